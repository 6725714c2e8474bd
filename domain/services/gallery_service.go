package services

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

// ProcessingStats summarizes the face-processing state of a wedding.
type ProcessingStats struct {
	TotalPhotos     int64 `json:"total_photos"`
	PendingPhotos   int64 `json:"pending_photos"`
	ProcessedPhotos int64 `json:"processed_photos"`
	FailedPhotos    int64 `json:"failed_photos"`
	TotalFaceTags   int64 `json:"total_face_tags"`
}

type GalleryService interface {
	GetWeddingPhotos(ctx context.Context, weddingID uuid.UUID, eventID *uuid.UUID, page, limit int, requester uuid.UUID) ([]models.Photo, int64, error)

	// GetMyPhotos lists photos the user appears in: a live filter over
	// non-rejected tags, optionally narrowed to one wedding.
	GetMyPhotos(ctx context.Context, userID uuid.UUID, weddingID *uuid.UUID, page, limit int) ([]models.Photo, int64, error)

	GetProcessingStats(ctx context.Context, weddingID uuid.UUID, requester uuid.UUID) (*ProcessingStats, error)
}
