package imagestore

import (
	"bytes"
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// UploadResult is what the external store hands back after a successful
// upload: the public serving URL and the store's own identifier.
type UploadResult struct {
	URL      string
	PublicID string
}

// Store is the external object store for content images. Upload failures
// are fatal to the calling request; Destroy is best effort.
type Store interface {
	Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary client init failed")
	}

	return &CloudinaryStore{client: client}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error) {
	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary upload failed")
	}

	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return errors.Wrap(err, "cloudinary destroy failed")
	}

	return nil
}
