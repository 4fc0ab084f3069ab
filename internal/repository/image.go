package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/silver-jubilee/backend/internal/domain"
)

type imageRepository struct {
	db *sqlx.DB
}

func newImageRepository(db *sqlx.DB) *imageRepository {
	return &imageRepository{
		db: db,
	}
}

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	const query = `
	INSERT INTO images (id, url, public_id, category)
	VALUES(uuid_to_bin(?), ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query, image.ID, image.URL, image.PublicID, image.Category)
	if err != nil {
		return fmt.Errorf("db insert image: %w", err)
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

func (r *imageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	const query = `
	SELECT id, url, public_id, category, created_at, updated_at
	FROM images WHERE id = uuid_to_bin(?);
	`

	var image domain.Image
	if err := r.db.GetContext(ctx, &image, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select image by id failed: %w", err)
	}

	return &image, nil
}

func (r *imageRepository) List(ctx context.Context, category *domain.ImageCategory) ([]domain.Image, error) {
	query := `SELECT id, url, public_id, category, created_at, updated_at FROM images`
	args := []interface{}{}

	if category != nil {
		query += ` WHERE category = ?`
		args = append(args, *category)
	}
	query += ` ORDER BY created_at DESC;`

	images := []domain.Image{}
	if err := r.db.SelectContext(ctx, &images, query, args...); err != nil {
		return nil, fmt.Errorf("select images failed: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM images WHERE id = uuid_to_bin(?);`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
