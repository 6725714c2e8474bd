package dto

import (
	"time"

	"github.com/google/uuid"
)

// PhotoResponse is the DTO for photo API responses
type PhotoResponse struct {
	ID               uuid.UUID  `json:"id"`
	WeddingID        uuid.UUID  `json:"wedding_id"`
	EventID          *uuid.UUID `json:"event_id,omitempty"`
	OriginalURL      string     `json:"original_url"`
	ThumbnailURL     string     `json:"thumbnail_url,omitempty"`
	Caption          string     `json:"caption,omitempty"`
	ProcessingStatus string     `json:"processing_status"`
	FacesDetected    int        `json:"faces_detected"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PhotoListResponse is the DTO for paginated photo lists
type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// FaceSampleResponse is the DTO for face enrollment responses
type FaceSampleResponse struct {
	ID             uuid.UUID `json:"id"`
	FaceEncodingID string    `json:"face_encoding_id"`
	Quality        float64   `json:"quality"`
	IsPrimary      bool      `json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadCredentialResponse is the DTO for presign responses
type UploadCredentialResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
	PublicURL  string `json:"public_url"`
	ExpiresIn  int    `json:"expires_in"`
}
