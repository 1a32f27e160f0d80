package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	secret := "test-secret"
	pid := uuid.New().String()

	token, err := SignJWT(secret, pid, "customer", 7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, pid, claims.PrincipalID)
	assert.Equal(t, "customer", claims.Role)

	// 7-day session
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 7*24*time.Hour, lifetime)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("right-secret", uuid.New().String(), "editor", 7)
	require.NoError(t, err)

	_, err = ParseJWT("wrong-secret", token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("secret", "not.a.token")
	assert.Error(t, err)
}
