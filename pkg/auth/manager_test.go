package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager("", time.Hour, RoleUser)
	assert.Error(t, err)

	_, err = NewManager("key", 0, RoleUser)
	assert.Error(t, err)

	_, err = NewManager("key", time.Hour, "superuser")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	manager, err := NewManager("user-signing-key", time.Hour, RoleUser)
	require.NoError(t, err)

	token, ttl, err := manager.NewToken("google-sub-123", "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-123", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestTokenKeyspacesAreIsolated(t *testing.T) {
	userManager, err := NewManager("user-signing-key", time.Hour, RoleUser)
	require.NoError(t, err)
	adminManager, err := NewManager("admin-signing-key", time.Hour, RoleAdmin)
	require.NoError(t, err)

	userToken, _, err := userManager.NewToken("google-sub-123", "alice@example.com", "Alice")
	require.NoError(t, err)

	// A user token must never verify against the admin keyspace.
	_, err = adminManager.Parse(userToken)
	assert.Error(t, err)

	adminToken, _, err := adminManager.NewToken("root", "", "")
	require.NoError(t, err)

	_, err = userManager.Parse(adminToken)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager, err := NewManager("user-signing-key", -time.Minute, RoleUser)
	require.NoError(t, err)

	token, _, err := manager.NewToken("google-sub-123", "alice@example.com", "Alice")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestGarbageTokenRejected(t *testing.T) {
	manager, err := NewManager("user-signing-key", time.Hour, RoleUser)
	require.NoError(t, err)

	_, err = manager.Parse("not-a-token")
	assert.Error(t, err)
}
