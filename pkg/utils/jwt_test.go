package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	cfg := JWTConfig{Secret: "test-secret", ExpiryHours: 2}
	userID := uuid.New()

	token, expiresAt, err := GenerateToken(cfg, userID, "jo@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().UTC().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.NotEmpty(t, claims.JTI)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken(JWTConfig{Secret: "secret-a", ExpiryHours: 1}, uuid.New(), "jo@example.com")
	require.NoError(t, err)

	_, err = ParseToken(JWTConfig{Secret: "secret-b", ExpiryHours: 1}, token)
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
