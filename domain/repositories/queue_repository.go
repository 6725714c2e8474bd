package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type QueueRepository interface {
	Create(ctx context.Context, entry *models.AiQueueEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AiQueueEntry, error)
	GetByPhoto(ctx context.Context, photoID uuid.UUID) (*models.AiQueueEntry, error)

	// ClaimNext atomically moves the highest-priority, oldest queued entry
	// to processing and returns it. Returns nil when the queue is empty.
	ClaimNext(ctx context.Context) (*models.AiQueueEntry, error)

	MarkCompleted(ctx context.Context, id uuid.UUID, processingMs int64) error

	// MarkFailed records a failed attempt. The entry goes back to queued
	// until attempts reach MaxAttempts, then becomes terminally failed.
	// Returns the resulting status.
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, processingMs int64) (models.QueueStatus, error)

	// RequeueForPhoto resets a terminally failed entry for manual retry.
	RequeueForPhoto(ctx context.Context, photoID uuid.UUID) error

	// ResetStuckProcessing requeues entries stuck in processing longer than
	// the threshold, preserving their attempt count.
	ResetStuckProcessing(ctx context.Context, threshold time.Duration) (int64, error)

	CountByWeddingAndStatus(ctx context.Context, weddingID uuid.UUID, status models.QueueStatus) (int64, error)
}
