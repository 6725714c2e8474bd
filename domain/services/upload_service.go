package services

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

// UploadCredential is a time-boxed write credential for direct-to-storage
// upload. Nothing is persisted until the client confirms.
type UploadCredential struct {
	UploadURL  string
	StorageKey string
	PublicURL  string
	ExpiresIn  int // seconds
}

type ConfirmUploadInput struct {
	StorageKey string
	EventID    *uuid.UUID
	Caption    string
}

type DirectUploadInput struct {
	OriginalURL string
	EventID     *uuid.UUID
	Caption     string
}

type UploadService interface {
	RequestUploadCredential(ctx context.Context, weddingID uuid.UUID, fileName, contentType string, requester uuid.UUID) (*UploadCredential, error)
	ConfirmUpload(ctx context.Context, weddingID uuid.UUID, input ConfirmUploadInput, requester uuid.UUID) (*models.Photo, error)
	DirectUpload(ctx context.Context, weddingID uuid.UUID, input DirectUploadInput, requester uuid.UUID) (*models.Photo, error)

	// RetryFailedPhotos requeues terminally failed photos of a wedding for
	// manual reprocessing. Host only.
	RetryFailedPhotos(ctx context.Context, weddingID uuid.UUID, requester uuid.UUID) (int64, error)
}
