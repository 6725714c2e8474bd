package repositories

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

// StatsRepository mutates the denormalized per-wedding aggregate row.
// All mutations are store-level increments so concurrent uploads and tag
// completions never lose updates.
type StatsRepository interface {
	EnsureExists(ctx context.Context, weddingID uuid.UUID) error
	GetByWedding(ctx context.Context, weddingID uuid.UUID) (*models.WeddingStats, error)

	// IncrementPhotoUploaded adds one to total photos and, when the photo
	// was queued for tagging, one to pending photos.
	IncrementPhotoUploaded(ctx context.Context, weddingID uuid.UUID, pending bool) error
	IncrementPhotoPending(ctx context.Context, weddingID uuid.UUID, delta int64) error
	MarkPhotoProcessed(ctx context.Context, weddingID uuid.UUID) error
	MarkPhotoFailed(ctx context.Context, weddingID uuid.UUID) error
	IncrementFaceTags(ctx context.Context, weddingID uuid.UUID, delta int64) error

	// Replace overwrites the row with freshly recounted values.
	Replace(ctx context.Context, stats *models.WeddingStats) error
}
