package models

import (
	"time"

	"github.com/google/uuid"
)

// WeddingStats is a denormalized aggregate row per wedding. Mutated by
// store-level increments; reconciled from source tables by the stats job.
type WeddingStats struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	TotalPhotos     int64 `gorm:"default:0"`
	PhotosPending   int64 `gorm:"default:0"`
	PhotosProcessed int64 `gorm:"default:0"`
	TotalFaceTags   int64 `gorm:"default:0"`

	GuestsTotal    int64 `gorm:"default:0"`
	GuestsAccepted int64 `gorm:"default:0"`
	GuestsDeclined int64 `gorm:"default:0"`
	EventCount     int64 `gorm:"default:0"`

	UpdatedAt time.Time
}

func (WeddingStats) TableName() string {
	return "wedding_stats"
}
