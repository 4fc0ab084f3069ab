package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/silver-jubilee/backend/internal/domain"
)

type Repositories struct {
	Registrations Registrations
	Admins        Admins
	Images        Images
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Registrations: newRegistrationRepository(db),
		Admins:        newAdminRepository(db),
		Images:        newImageRepository(db),
	}
}

type Registrations interface {
	// Create persists the registration and its receipt in one atomic
	// insert. Returns domain.ErrDuplicateEntry when a row for the same
	// external identity already exists.
	Create(ctx context.Context, registration *domain.Registration, receipt *domain.Receipt) error
	GetByOAuthUID(ctx context.Context, oauthUID string) (*domain.Registration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetReceiptByOAuthUID(ctx context.Context, oauthUID string) (*domain.Receipt, error)
	GetReceiptByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	List(ctx context.Context, status *domain.RegistrationStatus) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, approvedAt *time.Time, approvedBy *string) error
}

type Admins interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type Images interface {
	Create(ctx context.Context, image *domain.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	List(ctx context.Context, category *domain.ImageCategory) ([]domain.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
