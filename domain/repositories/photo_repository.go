package repositories

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	GetByStorageKey(ctx context.Context, key string) (*models.Photo, error)

	// GetByWedding returns approved, public photos for a wedding,
	// optionally filtered by event, newest first.
	GetByWedding(ctx context.Context, weddingID uuid.UUID, eventID *uuid.UUID, offset, limit int) ([]models.Photo, int64, error)
	GetFailedByWedding(ctx context.Context, weddingID uuid.UUID, limit int) ([]models.Photo, error)

	// UpdateProcessingResult transitions a photo out of pending/processing.
	// Returns the number of rows changed; zero means the photo was already
	// in a terminal state and counters must not be adjusted again.
	UpdateProcessingResult(ctx context.Context, id uuid.UUID, status models.PhotoProcessingStatus, facesDetected int, errMsg string) (int64, error)
	ResetToPending(ctx context.Context, id uuid.UUID) error

	CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error)
	CountByWeddingAndStatus(ctx context.Context, weddingID uuid.UUID, status models.PhotoProcessingStatus) (int64, error)
}
