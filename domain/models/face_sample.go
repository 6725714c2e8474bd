package models

import (
	"time"

	"github.com/google/uuid"
)

// FaceSample is one enrollment image for a person. Exactly one of
// UserID/GuestID identifies the person.
type FaceSample struct {
	ID      uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID  *uuid.UUID `gorm:"type:uuid;index"`
	GuestID *uuid.UUID `gorm:"type:uuid;index"`

	ImageURL     string `gorm:"not null"`
	ThumbnailURL string

	FaceEncodingID string `gorm:"not null"`
	// Encoding quality score reported by the recognition service (0-1)
	Quality float64 `gorm:"default:0"`

	IsPrimary bool   `gorm:"default:false"`
	Source    string `gorm:"default:'upload'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FaceSample) TableName() string {
	return "face_samples"
}
