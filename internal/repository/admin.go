package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/silver-jubilee/backend/internal/db"
	"github.com/silver-jubilee/backend/internal/domain"
)

type adminRepository struct {
	db *sqlx.DB
}

func newAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
	INSERT INTO admins (id, username, password_hash)
	VALUES(uuid_to_bin(?), ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query, admin.ID, admin.Username, admin.PasswordHash)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert admin: %w", err)
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

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `
	SELECT id, username, password_hash, created_at, updated_at
	FROM admins WHERE username = ?;
	`

	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select admin by username failed: %w", err)
	}

	return &admin, nil
}
