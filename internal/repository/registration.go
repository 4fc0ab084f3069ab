package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/silver-jubilee/backend/internal/db"
	"github.com/silver-jubilee/backend/internal/domain"
)

// registrationColumns excludes the receipt blob so listings do not drag
// megabytes of image data through every query.
const registrationColumns = `
	id, oauth_uid, oauth_email, name, batch, contact, email, linkedin, payment_ref,
	coming_with_family, family_members, amount, status, approved_at, approved_by,
	created_at, updated_at`

type registrationRepository struct {
	db *sqlx.DB
}

func newRegistrationRepository(db *sqlx.DB) *registrationRepository {
	return &registrationRepository{
		db: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration, receipt *domain.Receipt) error {
	const query = `
	INSERT INTO registrations
	(id, oauth_uid, oauth_email, name, batch, contact, email, linkedin, payment_ref,
	 coming_with_family, family_members, amount,
	 receipt_data, receipt_content_type, receipt_filename, status)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		registration.ID,
		registration.OAuthUID,
		registration.OAuthEmail,
		registration.Name,
		registration.Batch,
		registration.Contact,
		registration.Email,
		registration.LinkedIn,
		registration.PaymentRef,
		registration.ComingWithFamily,
		registration.FamilyMembers,
		registration.Amount,
		receipt.Data,
		receipt.ContentType,
		receipt.Filename,
		registration.Status,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *registrationRepository) GetByOAuthUID(ctx context.Context, oauthUID string) (*domain.Registration, error) {
	query := `SELECT` + registrationColumns + ` FROM registrations WHERE oauth_uid = ?;`

	var registration domain.Registration
	if err := r.db.GetContext(ctx, &registration, query, oauthUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select registration by oauth_uid failed: %w", err)
	}

	return &registration, nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := `SELECT` + registrationColumns + ` FROM registrations WHERE id = uuid_to_bin(?);`

	var registration domain.Registration
	if err := r.db.GetContext(ctx, &registration, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select registration by id failed: %w", err)
	}

	return &registration, nil
}

func (r *registrationRepository) GetReceiptByOAuthUID(ctx context.Context, oauthUID string) (*domain.Receipt, error) {
	const query = `
	SELECT receipt_data, receipt_content_type, receipt_filename
	FROM registrations WHERE oauth_uid = ?;
	`

	var receipt domain.Receipt
	if err := r.db.GetContext(ctx, &receipt, query, oauthUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select receipt by oauth_uid failed: %w", err)
	}

	return &receipt, nil
}

func (r *registrationRepository) GetReceiptByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	const query = `
	SELECT receipt_data, receipt_content_type, receipt_filename
	FROM registrations WHERE id = uuid_to_bin(?);
	`

	var receipt domain.Receipt
	if err := r.db.GetContext(ctx, &receipt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select receipt by id failed: %w", err)
	}

	return &receipt, nil
}

func (r *registrationRepository) List(ctx context.Context, status *domain.RegistrationStatus) ([]domain.Registration, error) {
	query := `SELECT` + registrationColumns + ` FROM registrations`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC;`

	registrations := []domain.Registration{}
	if err := r.db.SelectContext(ctx, &registrations, query, args...); err != nil {
		return nil, fmt.Errorf("select registrations failed: %w", err)
	}

	return registrations, nil
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, approvedAt *time.Time, approvedBy *string) error {
	const query = `
	UPDATE registrations SET status = ?, approved_at = ?, approved_by = ?
	WHERE id = uuid_to_bin(?);
	`

	_, err := r.db.ExecContext(ctx, query, status, approvedAt, approvedBy, id)
	if err != nil {
		return fmt.Errorf("update registration status failed: %w", err)
	}

	return nil
}
