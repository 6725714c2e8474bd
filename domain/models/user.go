package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email     string    `gorm:"uniqueIndex;not null"`
	FirstName string
	LastName  string
	Avatar    string
	Role      string `gorm:"default:'user'"`
	IsActive  bool   `gorm:"default:true"`

	// Face enrollment state. The encoding is global to the person and
	// applied per wedding via Guest records.
	FaceEncodingID     string
	FaceSampleProvided bool `gorm:"default:false"`

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Guests      []Guest      `gorm:"foreignKey:UserID"`
	FaceSamples []FaceSample `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
