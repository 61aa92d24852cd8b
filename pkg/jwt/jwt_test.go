package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m, err := NewManager(Config{Secret: "secret", TTL: time.Hour, Issuer: "test"})
	require.NoError(t, err)

	id := uuid.New()
	token, err := m.GenerateToken(id, "master@example.com", "Master", "master", "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "master", claims.Role)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateRejects(t *testing.T) {
	m, err := NewManager(Config{Secret: "secret", TTL: time.Hour, Issuer: "test"})
	require.NoError(t, err)
	other, err := NewManager(Config{Secret: "other", TTL: time.Hour, Issuer: "test"})
	require.NoError(t, err)

	foreign, err := other.GenerateToken(uuid.New(), "a@b.c", "A", "admin", "v1")
	require.NoError(t, err)
	_, err = m.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.GenerateToken(uuid.New(), "a@b.c", "A", "admin", "v1")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}
