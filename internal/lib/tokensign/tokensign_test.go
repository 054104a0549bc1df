package tokensign

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	secret := "test-secret"

	signed, err := Sign(map[string]any{"sub": "customer-1", "shop": "dev-store"}, secret, "", "")
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "customer-1", claims["sub"])
	assert.Equal(t, "dev-store", claims["shop"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, exp.Sub(iat.Time))
}

func TestSignCustomTTLAndAlgorithm(t *testing.T) {
	signed, err := Sign(map[string]any{"sub": "x"}, "secret", "30m", "HS512")
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS512"}))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, exp.Sub(iat.Time))
}

func TestSignRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn string
		algorithm string
	}{
		{name: "некорректный expiresIn", expiresIn: "seven days"},
		{name: "неизвестный алгоритм", algorithm: "HS999"},
		{name: "не-HMAC алгоритм", algorithm: "RS256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sign(map[string]any{"sub": "x"}, "secret", tt.expiresIn, tt.algorithm)
			assert.Error(t, err)
		})
	}
}
