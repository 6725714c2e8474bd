package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
	"wedding-gallery/domain/services"
	"wedding-gallery/infrastructure/recognition"
	"wedding-gallery/infrastructure/worker"
	"wedding-gallery/pkg/logger"
)

type EnrollmentServiceImpl struct {
	userRepo   repositories.UserRepository
	guestRepo  repositories.GuestRepository
	sampleRepo repositories.FaceSampleRepository
	recognizer recognition.Client
	dispatcher *worker.TriggerDispatcher

	// offline mode: no recognition service configured, encodings are
	// synthesized locally so enrollment still works in development
	offline       bool
	encodeTimeout time.Duration
}

func NewEnrollmentService(
	userRepo repositories.UserRepository,
	guestRepo repositories.GuestRepository,
	sampleRepo repositories.FaceSampleRepository,
	recognizer recognition.Client,
	dispatcher *worker.TriggerDispatcher,
	encodeTimeout time.Duration,
) services.EnrollmentService {
	return &EnrollmentServiceImpl{
		userRepo:      userRepo,
		guestRepo:     guestRepo,
		sampleRepo:    sampleRepo,
		recognizer:    recognizer,
		dispatcher:    dispatcher,
		offline:       recognizer == nil,
		encodeTimeout: encodeTimeout,
	}
}

func (s *EnrollmentServiceImpl) SubmitFaceSample(ctx context.Context, userID uuid.UUID, imageURL string) (*models.FaceSample, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image URL required", services.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", services.ErrNotFound, userID)
		}
		return nil, err
	}

	encodingID, quality, err := s.encode(ctx, imageURL, user.ID)
	if err != nil {
		return nil, err
	}

	// Last write wins: the newest sample becomes the primary encoding.
	if err := s.sampleRepo.ClearPrimary(ctx, userID); err != nil {
		return nil, err
	}

	sample := &models.FaceSample{
		ID:             uuid.New(),
		UserID:         &user.ID,
		ImageURL:       imageURL,
		FaceEncodingID: encodingID,
		Quality:        quality,
		IsPrimary:      true,
		Source:         "upload",
	}
	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFaceEncoding(ctx, userID, encodingID); err != nil {
		return nil, err
	}

	s.fanOutToGuests(ctx, userID, encodingID)

	logger.Face("enroll", "Face sample enrolled", map[string]interface{}{
		"user_id":     userID.String(),
		"encoding_id": encodingID,
		"quality":     quality,
	})

	return sample, nil
}

func (s *EnrollmentServiceImpl) encode(ctx context.Context, imageURL string, userID uuid.UUID) (string, float64, error) {
	if s.offline {
		// Deterministic-enough placeholder so the rest of the pipeline is
		// exercisable without the recognition service.
		encodingID := fmt.Sprintf("local-%s-%d", userID.String()[:8], time.Now().UnixNano())
		return encodingID, 0.9, nil
	}

	encodeCtx, cancel := context.WithTimeout(ctx, s.encodeTimeout)
	defer cancel()

	result, err := s.recognizer.EncodeFace(encodeCtx, imageURL, userID)
	if err != nil {
		if errors.Is(err, recognition.ErrNoFace) {
			return "", 0, fmt.Errorf("%w: %s", services.ErrNoFaceDetected, err.Error())
		}
		logger.FaceError("encode", "Recognition service call failed", err, map[string]interface{}{
			"user_id": userID.String(),
		})
		return "", 0, fmt.Errorf("%w: face encoding failed", services.ErrUpstreamUnavailable)
	}

	return result.FaceEncodingID, result.Quality, nil
}

// fanOutToGuests copies the new encoding onto every Guest record of the
// user and nudges per-wedding reprocessing. One wedding failing never
// blocks the others.
func (s *EnrollmentServiceImpl) fanOutToGuests(ctx context.Context, userID uuid.UUID, encodingID string) {
	guests, err := s.guestRepo.GetByUser(ctx, userID)
	if err != nil {
		logger.FaceError("fanout", "Failed to list guest records", err, map[string]interface{}{
			"user_id": userID.String(),
		})
		return
	}

	for _, guest := range guests {
		if err := s.guestRepo.UpdateFaceEncoding(ctx, guest.ID, encodingID); err != nil {
			logger.FaceError("fanout", "Failed to update guest encoding", err, map[string]interface{}{
				"guest_id":   guest.ID.String(),
				"wedding_id": guest.WeddingID.String(),
			})
			continue
		}
		if s.dispatcher != nil {
			s.dispatcher.NotifyReprocessWedding(guest.WeddingID, userID)
		}
	}
}
