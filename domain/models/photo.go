package models

import (
	"time"

	"github.com/google/uuid"
)

type PhotoProcessingStatus string

const (
	PhotoStatusPending    PhotoProcessingStatus = "pending"
	PhotoStatusProcessing PhotoProcessingStatus = "processing"
	PhotoStatusCompleted  PhotoProcessingStatus = "completed"
	PhotoStatusFailed     PhotoProcessingStatus = "failed"
)

type Photo struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WeddingID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventID   *uuid.UUID `gorm:"type:uuid;index"`

	// Uploader
	UploaderID uuid.UUID  `gorm:"type:uuid;not null;index"`
	GuestID    *uuid.UUID `gorm:"type:uuid"`

	// Storage locations. StorageKey is unique so the same object key
	// cannot be confirmed twice.
	StorageKey   string `gorm:"uniqueIndex"`
	OriginalURL  string `gorm:"not null"`
	ThumbnailURL string
	Caption      string

	// Face processing
	ProcessingStatus PhotoProcessingStatus `gorm:"default:'pending';index"`
	FacesDetected    int                   `gorm:"default:0"`
	ProcessingError  string
	ProcessedAt      *time.Time

	// Visibility (moderation mutates these, not the pipeline)
	IsPublic   bool `gorm:"default:true"`
	IsApproved bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Wedding Wedding    `gorm:"foreignKey:WeddingID"`
	Tags    []PhotoTag `gorm:"foreignKey:PhotoID"`
}

func (Photo) TableName() string {
	return "photos"
}
