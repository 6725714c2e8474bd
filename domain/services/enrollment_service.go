package services

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
)

type EnrollmentService interface {
	// SubmitFaceSample encodes the selfie at imageURL, stores a face
	// sample, updates the user's canonical encoding and fans the new
	// encoding out to every Guest record of the user, triggering
	// per-wedding reprocessing with isolated failures.
	SubmitFaceSample(ctx context.Context, userID uuid.UUID, imageURL string) (*models.FaceSample, error)
}
