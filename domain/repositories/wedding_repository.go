package repositories

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type WeddingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	EventExists(ctx context.Context, weddingID, eventID uuid.UUID) (bool, error)
	CountEvents(ctx context.Context, weddingID uuid.UUID) (int64, error)
}
