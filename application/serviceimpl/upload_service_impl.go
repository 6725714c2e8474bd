package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
	"wedding-gallery/domain/services"
	"wedding-gallery/infrastructure/storage"
	"wedding-gallery/infrastructure/worker"
	"wedding-gallery/pkg/logger"
)

type UploadServiceImpl struct {
	photoRepo   repositories.PhotoRepository
	queueRepo   repositories.QueueRepository
	guestRepo   repositories.GuestRepository
	weddingRepo repositories.WeddingRepository
	statsRepo   repositories.StatsRepository
	storage     storage.ObjectStorage
	dispatcher  *worker.TriggerDispatcher
	presignTTL  time.Duration
}

func NewUploadService(
	photoRepo repositories.PhotoRepository,
	queueRepo repositories.QueueRepository,
	guestRepo repositories.GuestRepository,
	weddingRepo repositories.WeddingRepository,
	statsRepo repositories.StatsRepository,
	objectStorage storage.ObjectStorage,
	dispatcher *worker.TriggerDispatcher,
	presignTTL time.Duration,
) services.UploadService {
	return &UploadServiceImpl{
		photoRepo:   photoRepo,
		queueRepo:   queueRepo,
		guestRepo:   guestRepo,
		weddingRepo: weddingRepo,
		statsRepo:   statsRepo,
		storage:     objectStorage,
		dispatcher:  dispatcher,
		presignTTL:  presignTTL,
	}
}

// authorizeUpload resolves the wedding and checks the requester is the host
// or an upload-permitted guest.
func (s *UploadServiceImpl) authorizeUpload(ctx context.Context, weddingID, requester uuid.UUID) (*models.Wedding, error) {
	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: wedding %s", services.ErrNotFound, weddingID)
		}
		return nil, err
	}

	if wedding.HostID == requester {
		return wedding, nil
	}

	guest, err := s.guestRepo.GetByWeddingAndUser(ctx, weddingID, requester)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: not a guest of this wedding", services.ErrPermissionDenied)
		}
		return nil, err
	}
	if !guest.CanUpload {
		return nil, fmt.Errorf("%w: uploads disabled for this guest", services.ErrPermissionDenied)
	}

	return wedding, nil
}

func (s *UploadServiceImpl) RequestUploadCredential(ctx context.Context, weddingID uuid.UUID, fileName, contentType string, requester uuid.UUID) (*services.UploadCredential, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name required", services.ErrInvalidInput)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", services.ErrInvalidInput, contentType)
	}

	if _, err := s.authorizeUpload(ctx, weddingID, requester); err != nil {
		return nil, err
	}

	key := buildStorageKey(weddingID, fileName)

	uploadURL, err := s.storage.PresignPut(ctx, key, contentType, s.presignTTL)
	if err != nil {
		logger.UploadError("presign", "Failed to presign upload", err, map[string]interface{}{
			"wedding_id": weddingID.String(),
			"key":        key,
		})
		return nil, fmt.Errorf("%w: storage presign failed", services.ErrUpstreamUnavailable)
	}

	logger.Upload("presign", "Issued upload credential", map[string]interface{}{
		"wedding_id": weddingID.String(),
		"key":        key,
	})

	return &services.UploadCredential{
		UploadURL:  uploadURL,
		StorageKey: key,
		PublicURL:  s.storage.PublicURL(key),
		ExpiresIn:  int(s.presignTTL.Seconds()),
	}, nil
}

func (s *UploadServiceImpl) ConfirmUpload(ctx context.Context, weddingID uuid.UUID, input services.ConfirmUploadInput, requester uuid.UUID) (*models.Photo, error) {
	wedding, err := s.authorizeUpload(ctx, weddingID, requester)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("weddings/%s/", weddingID)
	if !strings.HasPrefix(input.StorageKey, prefix) {
		return nil, fmt.Errorf("%w: storage key outside wedding namespace", services.ErrInvalidInput)
	}

	return s.createPhoto(ctx, wedding, input.StorageKey, s.storage.PublicURL(input.StorageKey), input.EventID, input.Caption, requester)
}

func (s *UploadServiceImpl) DirectUpload(ctx context.Context, weddingID uuid.UUID, input services.DirectUploadInput, requester uuid.UUID) (*models.Photo, error) {
	wedding, err := s.authorizeUpload(ctx, weddingID, requester)
	if err != nil {
		return nil, err
	}

	if input.OriginalURL == "" {
		return nil, fmt.Errorf("%w: original URL required", services.ErrInvalidInput)
	}

	// Legacy path: the object already lives at a caller-provided URL, so a
	// synthetic key keeps the uniqueness guarantee.
	key := buildStorageKey(weddingID, "direct")

	return s.createPhoto(ctx, wedding, key, input.OriginalURL, input.EventID, input.Caption, requester)
}

func (s *UploadServiceImpl) createPhoto(ctx context.Context, wedding *models.Wedding, storageKey, originalURL string, eventID *uuid.UUID, caption string, requester uuid.UUID) (*models.Photo, error) {
	if eventID != nil {
		exists, err := s.weddingRepo.EventExists(ctx, wedding.ID, *eventID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: event does not belong to this wedding", services.ErrInvalidInput)
		}
	}

	if existing, err := s.photoRepo.GetByStorageKey(ctx, storageKey); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: upload already confirmed", services.ErrInvalidInput)
	}

	var guestID *uuid.UUID
	if wedding.HostID != requester {
		if guest, err := s.guestRepo.GetByWeddingAndUser(ctx, wedding.ID, requester); err == nil {
			guestID = &guest.ID
		}
	}

	photo := &models.Photo{
		ID:               uuid.New(),
		WeddingID:        wedding.ID,
		EventID:          eventID,
		UploaderID:       requester,
		GuestID:          guestID,
		StorageKey:       storageKey,
		OriginalURL:      originalURL,
		Caption:          caption,
		ProcessingStatus: models.PhotoStatusPending,
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: upload already confirmed", services.ErrInvalidInput)
		}
		return nil, err
	}

	if err := s.statsRepo.EnsureExists(ctx, wedding.ID); err != nil {
		logger.StatsError("ensure", "Failed to ensure stats row", err, map[string]interface{}{
			"wedding_id": wedding.ID.String(),
		})
	}
	if err := s.statsRepo.IncrementPhotoUploaded(ctx, wedding.ID, wedding.AutoTagging); err != nil {
		logger.StatsError("increment", "Failed to count uploaded photo", err, map[string]interface{}{
			"wedding_id": wedding.ID.String(),
			"photo_id":   photo.ID.String(),
		})
	}

	if wedding.AutoTagging {
		entry := &models.AiQueueEntry{
			ID:          uuid.New(),
			PhotoID:     photo.ID,
			WeddingID:   wedding.ID,
			Status:      models.QueueStatusQueued,
			MaxAttempts: models.DefaultMaxAttempts,
		}
		if err := s.queueRepo.Create(ctx, entry); err != nil {
			// Photo stays pending; the reconciliation job surfaces the gap.
			logger.QueueError("enqueue", "Failed to create queue entry", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
			})
		} else if s.dispatcher != nil {
			s.dispatcher.NotifyProcessPhoto(photo.ID)
		}
	}

	logger.Upload("confirm", "Photo confirmed", map[string]interface{}{
		"photo_id":   photo.ID.String(),
		"wedding_id": wedding.ID.String(),
		"queued":     wedding.AutoTagging,
	})

	return photo, nil
}

func (s *UploadServiceImpl) RetryFailedPhotos(ctx context.Context, weddingID uuid.UUID, requester uuid.UUID) (int64, error) {
	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: wedding %s", services.ErrNotFound, weddingID)
		}
		return 0, err
	}
	if wedding.HostID != requester {
		return 0, fmt.Errorf("%w: only the host may retry failed photos", services.ErrPermissionDenied)
	}

	photos, err := s.photoRepo.GetFailedByWedding(ctx, weddingID, 100)
	if err != nil {
		return 0, err
	}

	var retried int64
	for _, photo := range photos {
		if err := s.queueRepo.RequeueForPhoto(ctx, photo.ID); err != nil {
			logger.QueueError("retry", "Failed to requeue photo", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
			})
			continue
		}
		if err := s.photoRepo.ResetToPending(ctx, photo.ID); err != nil {
			logger.QueueError("retry", "Failed to reset photo status", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
			})
			continue
		}
		if err := s.statsRepo.IncrementPhotoPending(ctx, weddingID, 1); err != nil {
			logger.StatsError("increment", "Failed to count requeued photo", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
			})
		}
		if s.dispatcher != nil {
			s.dispatcher.NotifyProcessPhoto(photo.ID)
		}
		retried++
	}

	logger.Queue("retry", "Requeued failed photos", map[string]interface{}{
		"wedding_id": weddingID.String(),
		"count":      retried,
	})

	return retried, nil
}

// buildStorageKey namespaces objects per wedding and keeps file names safe
// for object keys.
func buildStorageKey(weddingID uuid.UUID, fileName string) string {
	return fmt.Sprintf("weddings/%s/%s_%s", weddingID, uuid.New(), sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
