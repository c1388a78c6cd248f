package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("ab", 32)

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Minute)
	require.NoError(t, err)

	token, err := tm.CreateAccessToken("gm", "admin")
	require.NoError(t, err)

	claims, err := tm.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "gm", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejected(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Minute)
	require.NoError(t, err)
	other, err := NewTokenManager(strings.Repeat("cd", 32), time.Minute)
	require.NoError(t, err)

	foreign, err := other.CreateAccessToken("gm", "admin")
	require.NoError(t, err)
	_, err = tm.VerifyAccessToken(foreign)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	tm.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := tm.CreateAccessToken("gm", "admin")
	require.NoError(t, err)
	tm.now = time.Now
	_, err = tm.VerifyAccessToken(expired)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.VerifyAccessToken(unsigned)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = tm.VerifyAccessToken("garbage")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestNewTokenManagerSecret(t *testing.T) {
	_, err := NewTokenManager("zz", time.Minute)
	assert.Error(t, err)
	_, err = NewTokenManager("abcd", time.Minute)
	assert.Error(t, err)
}
