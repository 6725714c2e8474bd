package repositories

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type FaceSampleRepository interface {
	Create(ctx context.Context, sample *models.FaceSample) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.FaceSample, error)

	// ClearPrimary unsets is_primary on the user's existing samples before
	// a new primary sample is stored.
	ClearPrimary(ctx context.Context, userID uuid.UUID) error
}
