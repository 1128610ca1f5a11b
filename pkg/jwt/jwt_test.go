package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewService("test-secret", time.Hour, 24*time.Hour)

	pair, err := svc.GenerateTokenPair("pub-123", "alice", 7, 3)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "pub-123", claims.PublicID)
	assert.Equal(t, "alice", claims.Username)
	require.NotNil(t, claims.RoleID)
	assert.Equal(t, int64(7), *claims.RoleID)
	require.NotNil(t, claims.TokenVersion)
	assert.Equal(t, 3, *claims.TokenVersion)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair("pub-123", "alice", 1, 0)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewService("secret-a", time.Hour, 24*time.Hour)
	other := NewService("secret-b", time.Hour, 24*time.Hour)

	pair, err := svc.GenerateTokenPair("pub-123", "alice", 1, 0)
	require.NoError(t, err)

	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour, 24*time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
