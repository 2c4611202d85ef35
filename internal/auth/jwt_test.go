package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ada@example.com", "USER")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := NewTokenManager("secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenManager("different", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ada@example.com", "USER")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ada@example.com", "USER")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("secret", 15*time.Minute, 24*time.Hour)

	_, err := m.Parse("definitely.not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
