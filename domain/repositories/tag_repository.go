package repositories

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.PhotoTag) error
	GetByPhoto(ctx context.Context, photoID uuid.UUID) ([]models.PhotoTag, error)

	// GetPhotosForUser returns photos where the user has a non-rejected
	// tag, optionally filtered by wedding. This is the "My Photos" query
	// and is always computed live.
	GetPhotosForUser(ctx context.Context, userID uuid.UUID, weddingID *uuid.UUID, offset, limit int) ([]models.Photo, int64, error)

	CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error)
}
