package models

import (
	"time"

	"github.com/google/uuid"
)

type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

// Guest binds a user to one wedding with RSVP, upload permission and
// face-sample state.
type Guest struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guests_wedding_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guests_wedding_user;index"`

	DisplayName string
	RSVPStatus  RSVPStatus `gorm:"default:'pending';index"`
	RSVPDate    *time.Time
	CanUpload   bool `gorm:"default:true"`

	// Face-sample state, copied from the user on enrollment.
	// PhotosProcessed must be reset to false whenever FaceEncodingID
	// changes so retroactive tagging is not skipped.
	FaceEncodingID     string
	FaceSampleProvided bool `gorm:"default:false"`
	PhotosProcessed    bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Wedding Wedding `gorm:"foreignKey:WeddingID"`
	User    User    `gorm:"foreignKey:UserID"`
}

func (Guest) TableName() string {
	return "guests"
}
