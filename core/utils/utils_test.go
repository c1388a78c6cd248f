package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionEncoding(t *testing.T) {
	for _, expr := range []string{"4d6L1+2", "(1d20+5)//2", "2**-1", "d%?"} {
		encoded := EncodeExpression(expr)
		assert.NotContains(t, encoded, "+")
		assert.NotContains(t, encoded, "/")

		decoded, err := DecodeExpression(encoded)
		require.NoError(t, err)
		assert.Equal(t, expr, decoded)
	}

	decoded, err := DecodeExpression("MWQ2")
	require.NoError(t, err)
	assert.Equal(t, "1d6", decoded)

	decoded, err = DecodeExpression("MWQyMA")
	require.NoError(t, err)
	assert.Equal(t, "1d20", decoded)

	_, err = DecodeExpression("not base64!")
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.14, Round(3.14159, 2))
	assert.Equal(t, -1.5, Round(-1.49, 1))
	assert.Equal(t, map[int]float64{1: 0.33, 2: 0.67}, RoundMap(map[int]float64{1: 1.0 / 3, 2: 2.0 / 3}, 2))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50 s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.25 ms", FormatDuration(2250*time.Microsecond))
	assert.Equal(t, "15 μs", FormatDuration(15*time.Microsecond))
}
