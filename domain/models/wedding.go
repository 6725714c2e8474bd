package models

import (
	"time"

	"github.com/google/uuid"
)

type Wedding struct {
	ID     uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	HostID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title string `gorm:"not null"`
	Slug  string `gorm:"uniqueIndex"`
	Date  *time.Time

	// When enabled, every confirmed upload is queued for face recognition
	AutoTagging bool `gorm:"default:true"`
	IsActive    bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Host   User           `gorm:"foreignKey:HostID"`
	Events []WeddingEvent `gorm:"foreignKey:WeddingID"`
	Guests []Guest        `gorm:"foreignKey:WeddingID"`
	Photos []Photo        `gorm:"foreignKey:WeddingID"`
}

func (Wedding) TableName() string {
	return "weddings"
}
