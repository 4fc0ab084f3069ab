package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/pkg/auth"
	"github.com/silver-jubilee/backend/pkg/hash"
)

type fakeVerifier struct {
	identity *domain.Identity
	err      error
}

func (v *fakeVerifier) Verify(context.Context, string) (*domain.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	copied := *v.identity
	return &copied, nil
}

type fakeAdminRepo struct {
	byUsername map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byUsername: make(map[string]*domain.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	if _, ok := r.byUsername[admin.Username]; ok {
		return domain.ErrDuplicateEntry
	}
	stored := *admin
	r.byUsername[admin.Username] = &stored
	return nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	admin, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func newTestAuthService(t *testing.T, verifier *fakeVerifier) (*authService, *fakeAdminRepo) {
	t.Helper()

	userTokens, err := auth.NewManager("user-key", time.Hour, auth.RoleUser)
	require.NoError(t, err)
	adminTokens, err := auth.NewManager("admin-key", time.Hour, auth.RoleAdmin)
	require.NoError(t, err)

	repo := newFakeAdminRepo()
	svc := newAuthService(repo, hash.NewBcryptHasher(4), userTokens, adminTokens, verifier)
	return svc, repo
}

func TestLoginGoogleInvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeVerifier{err: errors.New("signature mismatch")})

	_, err := svc.LoginGoogle(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)
}

func TestLoginGoogleMintsUserToken(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeVerifier{identity: &domain.Identity{
		Subject: "google-sub-123",
		Email:   "Alice@Example.com",
		Name:    "Alice Kumar",
		Picture: "https://example.com/alice.png",
	}})

	session, err := svc.LoginGoogle(context.Background(), "valid-token")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, time.Hour, session.ExpiresIn)
	assert.Equal(t, "alice@example.com", session.Identity.Email)

	userTokens, err := auth.NewManager("user-key", time.Hour, auth.RoleUser)
	require.NoError(t, err)
	claims, err := userTokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-123", claims.Subject)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestLoginAdmin(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeVerifier{})

	require.NoError(t, svc.SeedAdmin(context.Background(), "root", "sup3r-secret"))

	_, err := svc.LoginAdmin(context.Background(), "nobody", "sup3r-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginAdmin(context.Background(), "root", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := svc.LoginAdmin(context.Background(), "root", "sup3r-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	adminTokens, err := auth.NewManager("admin-key", time.Hour, auth.RoleAdmin)
	require.NoError(t, err)
	claims, err := adminTokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "root", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestSeedAdminStoresHashedPassword(t *testing.T) {
	svc, repo := newTestAuthService(t, &fakeVerifier{})

	require.NoError(t, svc.SeedAdmin(context.Background(), "root", "sup3r-secret"))

	stored := repo.byUsername["root"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "sup3r-secret", stored.PasswordHash)
	assert.NotEmpty(t, stored.ID)
}

func TestSeedAdminDuplicate(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeVerifier{})

	require.NoError(t, svc.SeedAdmin(context.Background(), "root", "sup3r-secret"))
	err := svc.SeedAdmin(context.Background(), "root", "another-secret")
	assert.ErrorIs(t, err, ErrAdminAlreadyExists)
}
