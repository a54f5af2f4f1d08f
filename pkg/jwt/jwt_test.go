package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, secret string) *Manager {
	t.Helper()
	m, err := NewManager(secret, "salt", "blog-backend", time.Hour)
	require.NoError(t, err)
	return m
}

func TestManager_RoundTrip(t *testing.T) {
	m := newTestManager(t, "secret")

	token, err := m.GenerateAccessToken(Identity{
		ID:    "0190f5c4-7a3e-7c1d-9a4b-1f2e3d4c5b6a",
		Email: "author@example.com",
		Name:  "Author",
		Role:  "ADMIN",
	})
	require.NoError(t, err)

	id, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0190f5c4-7a3e-7c1d-9a4b-1f2e3d4c5b6a", id.ID)
	assert.Equal(t, "author@example.com", id.Email)
	assert.Equal(t, "Author", id.Name)
	assert.Equal(t, "ADMIN", id.Role)
}

func TestManager_RejectsTokenFromOtherSecret(t *testing.T) {
	issuer := newTestManager(t, "secret-a")
	verifier := newTestManager(t, "secret-b")

	token, err := issuer.GenerateAccessToken(Identity{ID: "u1", Role: "ADMIN"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := newTestManager(t, "secret")
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	token, err := m.GenerateAccessToken(Identity{ID: "u1"})
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := newTestManager(t, "secret")

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("", "salt", "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestDeriveKey_DependsOnSalt(t *testing.T) {
	a, err := deriveKey("secret", "salt-a")
	require.NoError(t, err)
	b, err := deriveKey("secret", "salt-b")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
