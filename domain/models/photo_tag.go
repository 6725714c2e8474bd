package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoTag asserts that a person appears in a photo. Created exclusively
// by the recognition pipeline through the internal API surface.
type PhotoTag struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PhotoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Matched person: at most one of the two is set
	GuestID *uuid.UUID `gorm:"type:uuid;index"`
	UserID  *uuid.UUID `gorm:"type:uuid;index"`

	Confidence *float64

	// Bounding box (normalized 0-1)
	BboxX      float64 `gorm:"default:0"`
	BboxY      float64 `gorm:"default:0"`
	BboxWidth  float64 `gorm:"default:0"`
	BboxHeight float64 `gorm:"default:0"`

	FaceEncodingID  string
	Verified        bool `gorm:"default:false"`
	Rejected        bool `gorm:"default:false;index"`
	IsPrimaryPerson bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Photo Photo `gorm:"foreignKey:PhotoID"`
}

func (PhotoTag) TableName() string {
	return "photo_tags"
}
