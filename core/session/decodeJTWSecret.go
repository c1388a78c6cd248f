package session

import (
	"encoding/hex"
	"fmt"
)

// minSecretBytes is the smallest HS256 key accepted.
const minSecretBytes = 32

func decodeSecret(hexSecret string) ([]byte, error) {
	secret, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, err
	}
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("secret is %d bytes, need at least %d", len(secret), minSecretBytes)
	}
	return secret, nil
}
