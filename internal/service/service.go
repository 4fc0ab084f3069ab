package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/idp"
	"github.com/silver-jubilee/backend/internal/imagestore"
	"github.com/silver-jubilee/backend/internal/repository"
	"github.com/silver-jubilee/backend/pkg/auth"
	"github.com/silver-jubilee/backend/pkg/hash"
)

type Services struct {
	Auth          Auth
	Registrations Registrations
	Images        Images
}

type Deps struct {
	Config           *config.Config
	Hasher           hash.PasswordHasher
	UserTokens       auth.TokenManager
	AdminTokens      auth.TokenManager
	IdentityVerifier idp.Verifier
	ImageStore       imagestore.Store
	Notifier         StatusNotifier
	Repos            *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Auth: newAuthService(deps.Repos.Admins,
			deps.Hasher,
			deps.UserTokens,
			deps.AdminTokens,
			deps.IdentityVerifier,
		),
		Registrations: newRegistrationService(deps.Repos.Registrations,
			deps.Config.Fees,
			deps.Notifier,
		),
		Images: newImageService(deps.Repos.Images,
			deps.ImageStore,
			deps.Config.ImageStore,
		),
	}
}

type UserSession struct {
	Token     string
	ExpiresIn time.Duration
	Identity  domain.Identity
}

type AdminSession struct {
	Token     string
	ExpiresIn time.Duration
}

type Auth interface {
	// LoginGoogle verifies a Google-issued identity assertion and mints an
	// internal user token for it.
	LoginGoogle(ctx context.Context, rawIDToken string) (*UserSession, error)
	LoginAdmin(ctx context.Context, username, password string) (*AdminSession, error)
	// SeedAdmin creates a back-office principal. Callers must gate this
	// behind the setup key; it is never exposed to public traffic.
	SeedAdmin(ctx context.Context, username, password string) error
}

type SubmitRegistrationInput struct {
	Name             string
	Batch            string
	Contact          string
	Email            string
	LinkedIn         string
	PaymentRef       string
	ComingWithFamily bool
	FamilyMembers    []domain.FamilyMember
	Receipt          *domain.Receipt
}

type Registrations interface {
	Submit(ctx context.Context, identity domain.Identity, input SubmitRegistrationInput) (*domain.Registration, error)
	GetOwn(ctx context.Context, oauthUID string) (*domain.Registration, error)
	GetOwnReceipt(ctx context.Context, oauthUID string) (*domain.Receipt, error)
	GetReceiptByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	List(ctx context.Context, status *domain.RegistrationStatus) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, adminUsername string) (*domain.Registration, error)
}

type Images interface {
	Upload(ctx context.Context, data []byte, contentType string, category domain.ImageCategory) (*domain.Image, error)
	List(ctx context.Context, category *domain.ImageCategory) ([]domain.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatusNotifier delivers the decision notification after an admin moves a
// registration to a terminal-looking status. Delivery is best effort and
// must never fail the admin request.
type StatusNotifier interface {
	NotifyStatusDecision(ctx context.Context, email, name string, status domain.RegistrationStatus) error
}
