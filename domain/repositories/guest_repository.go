package repositories

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	GetByWeddingAndUser(ctx context.Context, weddingID, userID uuid.UUID) (*models.Guest, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Guest, error)

	// GetEncodingsByWedding returns guests of a wedding that have a face
	// encoding enrolled.
	GetEncodingsByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.Guest, error)

	// UpdateFaceEncoding sets the guest's encoding, marks the sample as
	// provided and resets photos_processed so reprocessing is not skipped.
	UpdateFaceEncoding(ctx context.Context, guestID uuid.UUID, encodingID string) error
	MarkPhotosProcessed(ctx context.Context, weddingID, userID uuid.UUID) error

	CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error)
	CountByWeddingAndRSVP(ctx context.Context, weddingID uuid.UUID, status models.RSVPStatus) (int64, error)
}
