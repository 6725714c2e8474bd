package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
	"wedding-gallery/domain/services"
	"wedding-gallery/pkg/logger"
)

type RecognitionResultServiceImpl struct {
	queueRepo repositories.QueueRepository
	photoRepo repositories.PhotoRepository
	tagRepo   repositories.TagRepository
	guestRepo repositories.GuestRepository
	statsRepo repositories.StatsRepository
}

func NewRecognitionResultService(
	queueRepo repositories.QueueRepository,
	photoRepo repositories.PhotoRepository,
	tagRepo repositories.TagRepository,
	guestRepo repositories.GuestRepository,
	statsRepo repositories.StatsRepository,
) services.RecognitionResultService {
	return &RecognitionResultServiceImpl{
		queueRepo: queueRepo,
		photoRepo: photoRepo,
		tagRepo:   tagRepo,
		guestRepo: guestRepo,
		statsRepo: statsRepo,
	}
}

func (s *RecognitionResultServiceImpl) ClaimNextJob(ctx context.Context) (*models.AiQueueEntry, error) {
	entry, err := s.queueRepo.ClaimNext(ctx)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	logger.Queue("claim", "Queue entry claimed", map[string]interface{}{
		"entry_id": entry.ID.String(),
		"photo_id": entry.PhotoID.String(),
		"attempts": entry.Attempts,
	})
	return entry, nil
}

func (s *RecognitionResultServiceImpl) CompleteJob(ctx context.Context, entryID uuid.UUID, input services.CompleteJobInput) (*models.AiQueueEntry, error) {
	entry, err := s.queueRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: queue entry %s", services.ErrNotFound, entryID)
		}
		return nil, err
	}
	if entry.Status == models.QueueStatusFailed {
		return nil, fmt.Errorf("%w: entry %s", services.ErrAttemptsExhausted, entryID)
	}
	if entry.Status != models.QueueStatusProcessing {
		return nil, fmt.Errorf("%w: entry is %s, not processing", services.ErrInvalidInput, entry.Status)
	}

	if input.Success {
		if err := s.queueRepo.MarkCompleted(ctx, entryID, input.ProcessingMs); err != nil {
			return nil, err
		}
		logger.Queue("complete", "Queue entry completed", map[string]interface{}{
			"entry_id":      entryID.String(),
			"photo_id":      entry.PhotoID.String(),
			"processing_ms": input.ProcessingMs,
		})
		return s.queueRepo.GetByID(ctx, entryID)
	}

	status, err := s.queueRepo.MarkFailed(ctx, entryID, input.ErrorMessage, input.ProcessingMs)
	if err != nil {
		return nil, err
	}

	if status == models.QueueStatusFailed {
		// Attempts exhausted: the photo is terminally failed too.
		if err := s.ReportPhotoStatus(ctx, entry.PhotoID, models.PhotoStatusFailed, 0, input.ErrorMessage); err != nil {
			logger.QueueError("fail", "Failed to mark photo failed", err, map[string]interface{}{
				"photo_id": entry.PhotoID.String(),
			})
		}
		logger.Queue("fail", "Queue entry exhausted attempts", map[string]interface{}{
			"entry_id": entryID.String(),
			"photo_id": entry.PhotoID.String(),
		})
	} else {
		logger.Queue("requeue", "Queue entry requeued after failure", map[string]interface{}{
			"entry_id": entryID.String(),
			"photo_id": entry.PhotoID.String(),
			"attempts": entry.Attempts + 1,
		})
	}

	return s.queueRepo.GetByID(ctx, entryID)
}

func (s *RecognitionResultServiceImpl) ReportPhotoStatus(ctx context.Context, photoID uuid.UUID, status models.PhotoProcessingStatus, facesDetected int, errMsg string) error {
	if status != models.PhotoStatusProcessing && status != models.PhotoStatusCompleted && status != models.PhotoStatusFailed {
		return fmt.Errorf("%w: status %q", services.ErrInvalidInput, status)
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: photo %s", services.ErrNotFound, photoID)
		}
		return err
	}

	changed, err := s.photoRepo.UpdateProcessingResult(ctx, photoID, status, facesDetected, errMsg)
	if err != nil {
		return err
	}
	if changed == 0 {
		// Already terminal; duplicate report, counters stay untouched.
		return nil
	}

	switch status {
	case models.PhotoStatusCompleted:
		if err := s.statsRepo.MarkPhotoProcessed(ctx, photo.WeddingID); err != nil {
			logger.StatsError("increment", "Failed to count processed photo", err, map[string]interface{}{
				"photo_id": photoID.String(),
			})
		}
	case models.PhotoStatusFailed:
		if err := s.statsRepo.MarkPhotoFailed(ctx, photo.WeddingID); err != nil {
			logger.StatsError("increment", "Failed to count failed photo", err, map[string]interface{}{
				"photo_id": photoID.String(),
			})
		}
	}

	return nil
}

func (s *RecognitionResultServiceImpl) CreateTag(ctx context.Context, input services.CreateTagInput) (*models.PhotoTag, error) {
	if input.GuestID != nil && input.UserID != nil {
		return nil, fmt.Errorf("%w: tag may identify a guest or a user, not both", services.ErrInvalidInput)
	}

	photo, err := s.photoRepo.GetByID(ctx, input.PhotoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: photo %s", services.ErrNotFound, input.PhotoID)
		}
		return nil, err
	}

	if input.GuestID != nil {
		guest, err := s.guestRepo.GetByID(ctx, *input.GuestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: guest %s", services.ErrNotFound, *input.GuestID)
			}
			return nil, err
		}
		if guest.WeddingID != photo.WeddingID {
			return nil, fmt.Errorf("%w: guest belongs to a different wedding", services.ErrInvalidInput)
		}
	}

	tag := &models.PhotoTag{
		ID:              uuid.New(),
		PhotoID:         photo.ID,
		WeddingID:       photo.WeddingID,
		GuestID:         input.GuestID,
		UserID:          input.UserID,
		Confidence:      input.Confidence,
		BboxX:           input.BboxX,
		BboxY:           input.BboxY,
		BboxWidth:       input.BboxWidth,
		BboxHeight:      input.BboxHeight,
		FaceEncodingID:  input.FaceEncodingID,
		IsPrimaryPerson: input.IsPrimaryPerson,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	if err := s.statsRepo.IncrementFaceTags(ctx, photo.WeddingID, 1); err != nil {
		logger.StatsError("increment", "Failed to count face tag", err, map[string]interface{}{
			"photo_id": photo.ID.String(),
		})
	}

	return tag, nil
}

func (s *RecognitionResultServiceImpl) GetWeddingEncodings(ctx context.Context, weddingID uuid.UUID) ([]services.GuestEncoding, error) {
	guests, err := s.guestRepo.GetEncodingsByWedding(ctx, weddingID)
	if err != nil {
		return nil, err
	}

	encodings := make([]services.GuestEncoding, 0, len(guests))
	for _, guest := range guests {
		encodings = append(encodings, services.GuestEncoding{
			GuestID:        guest.ID,
			UserID:         guest.UserID,
			FaceEncodingID: guest.FaceEncodingID,
		})
	}
	return encodings, nil
}

func (s *RecognitionResultServiceImpl) MarkGuestProcessed(ctx context.Context, weddingID, userID uuid.UUID) error {
	return s.guestRepo.MarkPhotosProcessed(ctx, weddingID, userID)
}
