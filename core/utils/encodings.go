package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeExpression encodes a dice expression for use in a URL query.
func EncodeExpression(expression string) string {
	return base64.URLEncoding.EncodeToString([]byte(expression))
}

// DecodeExpression reverses EncodeExpression. Missing padding is accepted.
func DecodeExpression(encoded string) (string, error) {
	encoded = strings.TrimRight(encoded, "=")
	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode expression: %w", err)
	}
	return string(decoded), nil
}
