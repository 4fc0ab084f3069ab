package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/idp"
	"github.com/silver-jubilee/backend/internal/repository"
	"github.com/silver-jubilee/backend/pkg/auth"
	"github.com/silver-jubilee/backend/pkg/hash"
)

type authService struct {
	adminRepository  repository.Admins
	hasher           hash.PasswordHasher
	userTokens       auth.TokenManager
	adminTokens      auth.TokenManager
	identityVerifier idp.Verifier
}

func newAuthService(adminRepository repository.Admins,
	hasher hash.PasswordHasher,
	userTokens auth.TokenManager,
	adminTokens auth.TokenManager,
	identityVerifier idp.Verifier,
) *authService {
	return &authService{
		adminRepository:  adminRepository,
		hasher:           hasher,
		userTokens:       userTokens,
		adminTokens:      adminTokens,
		identityVerifier: identityVerifier,
	}
}

func (s *authService) LoginGoogle(ctx context.Context, rawIDToken string) (*UserSession, error) {
	identity, err := s.identityVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, ErrInvalidIdentityToken
	}

	identity.Email = strings.ToLower(identity.Email)

	token, ttl, err := s.userTokens.NewToken(identity.Subject, identity.Email, identity.Name)
	if err != nil {
		return nil, fmt.Errorf("mint user token failed: %w", err)
	}

	return &UserSession{
		Token:     token,
		ExpiresIn: ttl,
		Identity:  *identity,
	}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, username, password string) (*AdminSession, error) {
	admin, err := s.adminRepository.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error for unknown user and bad password.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get admin by username failed: %w", err)
	}

	if !s.hasher.Compare(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.adminTokens.NewToken(admin.Username, "", "")
	if err != nil {
		return nil, fmt.Errorf("mint admin token failed: %w", err)
	}

	return &AdminSession{
		Token:     token,
		ExpiresIn: ttl,
	}, nil
}

func (s *authService) SeedAdmin(ctx context.Context, username, password string) error {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate admin id failed: %w", err)
	}

	admin := &domain.Admin{
		ID:           id,
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
	}

	if err := s.adminRepository.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return ErrAdminAlreadyExists
		}
		return fmt.Errorf("create admin failed: %w", err)
	}

	return nil
}
