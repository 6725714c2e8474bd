package models

import (
	"time"

	"github.com/google/uuid"
)

type QueueStatus string

const (
	QueueStatusQueued     QueueStatus = "queued"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusFailed     QueueStatus = "failed"
)

const DefaultMaxAttempts = 3

// AiQueueEntry is one unit of face-recognition work for one photo.
// At most one entry exists per photo (unique index on PhotoID).
type AiQueueEntry struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PhotoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`

	Status      QueueStatus `gorm:"default:'queued';index"`
	Priority    int         `gorm:"default:0"`
	Attempts    int         `gorm:"default:0"`
	MaxAttempts int         `gorm:"default:3"`

	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage string
	ProcessingMs int64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Photo Photo `gorm:"foreignKey:PhotoID"`
}

func (AiQueueEntry) TableName() string {
	return "ai_queue_entries"
}
