package models

import (
	"time"

	"github.com/google/uuid"
)

type WeddingEvent struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name     string `gorm:"not null"`
	Location string
	StartsAt *time.Time
	EndsAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Wedding Wedding `gorm:"foreignKey:WeddingID"`
}

func (WeddingEvent) TableName() string {
	return "wedding_events"
}
