package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/imagestore"
	"github.com/silver-jubilee/backend/internal/repository"
	"github.com/silver-jubilee/backend/pkg/logger"
)

type imageService struct {
	imageRepository repository.Images
	store           imagestore.Store
	config          config.ImageStoreConfig
}

func newImageService(imageRepository repository.Images,
	store imagestore.Store,
	config config.ImageStoreConfig,
) *imageService {
	return &imageService{
		imageRepository: imageRepository,
		store:           store,
		config:          config,
	}
}

// Upload pushes the bytes to the external store first; a store failure is
// fatal and no local record is written.
func (s *imageService) Upload(ctx context.Context, data []byte, contentType string, category domain.ImageCategory) (*domain.Image, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown image category %q", category)
	}

	folder := s.config.Folder + "/" + string(category)
	result, err := s.store.Upload(ctx, data, folder)
	if err != nil {
		return nil, fmt.Errorf("image store upload failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate image id failed: %w", err)
	}

	image := &domain.Image{
		ID:       id,
		URL:      result.URL,
		PublicID: result.PublicID,
		Category: category,
	}

	if err := s.imageRepository.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create image record failed: %w", err)
	}

	return image, nil
}

func (s *imageService) List(ctx context.Context, category *domain.ImageCategory) ([]domain.Image, error) {
	return s.imageRepository.List(ctx, category)
}

// Delete removes the catalog record even when the external store refuses
// the destroy, so the public listing never shows dead entries.
func (s *imageService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.imageRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("get image by id failed: %w", err)
	}

	if err := s.store.Destroy(ctx, image.PublicID); err != nil {
		logger.Warn("image store destroy failed", zap.Error(err), zap.String("public_id", image.PublicID))
	}

	if err := s.imageRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete image record failed: %w", err)
	}

	return nil
}
