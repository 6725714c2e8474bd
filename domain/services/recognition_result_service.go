package services

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

// CompleteJobInput reports the outcome of one queue entry.
type CompleteJobInput struct {
	Success      bool
	ErrorMessage string
	ProcessingMs int64
}

// CreateTagInput is the consumer's request to record one recognized face.
// Exactly one of GuestID/UserID may identify the matched person; both nil
// tags by encoding alone.
type CreateTagInput struct {
	PhotoID         uuid.UUID
	GuestID         *uuid.UUID
	UserID          *uuid.UUID
	Confidence      *float64
	BboxX           float64
	BboxY           float64
	BboxWidth       float64
	BboxHeight      float64
	FaceEncodingID  string
	IsPrimaryPerson bool
}

type GuestEncoding struct {
	GuestID        uuid.UUID `json:"guest_id"`
	UserID         uuid.UUID `json:"user_id"`
	FaceEncodingID string    `json:"face_encoding_id"`
}

// RecognitionResultService is the service-to-service surface used by the
// out-of-process queue consumer. It is never reachable with end-user
// credentials.
type RecognitionResultService interface {
	ClaimNextJob(ctx context.Context) (*models.AiQueueEntry, error)
	CompleteJob(ctx context.Context, entryID uuid.UUID, input CompleteJobInput) (*models.AiQueueEntry, error)

	// ReportPhotoStatus updates the photo's processing outcome and adjusts
	// the wedding's pending/processed counters exactly once.
	ReportPhotoStatus(ctx context.Context, photoID uuid.UUID, status models.PhotoProcessingStatus, facesDetected int, errMsg string) error

	CreateTag(ctx context.Context, input CreateTagInput) (*models.PhotoTag, error)
	GetWeddingEncodings(ctx context.Context, weddingID uuid.UUID) ([]GuestEncoding, error)
	MarkGuestProcessed(ctx context.Context, weddingID, userID uuid.UUID) error
}
