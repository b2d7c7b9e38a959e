package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, "64abc0123456789012345678", "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "64abc0123456789012345678", claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseJWTRejectsBadInput(t *testing.T) {
	secret := []byte("test-secret")

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := ParseJWT(secret, "")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := GenerateJWT(secret, "id", "admin@example.com")
		require.NoError(t, err)

		_, err = ParseJWT([]byte("other-secret"), token)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseJWT(secret, "not.a.token")
		assert.Error(t, err)
	})
}
