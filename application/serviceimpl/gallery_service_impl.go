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
)

type GalleryServiceImpl struct {
	photoRepo   repositories.PhotoRepository
	tagRepo     repositories.TagRepository
	guestRepo   repositories.GuestRepository
	weddingRepo repositories.WeddingRepository
	statsRepo   repositories.StatsRepository
}

func NewGalleryService(
	photoRepo repositories.PhotoRepository,
	tagRepo repositories.TagRepository,
	guestRepo repositories.GuestRepository,
	weddingRepo repositories.WeddingRepository,
	statsRepo repositories.StatsRepository,
) services.GalleryService {
	return &GalleryServiceImpl{
		photoRepo:   photoRepo,
		tagRepo:     tagRepo,
		guestRepo:   guestRepo,
		weddingRepo: weddingRepo,
		statsRepo:   statsRepo,
	}
}

// authorizeView checks the requester belongs to the wedding as host or guest.
func (s *GalleryServiceImpl) authorizeView(ctx context.Context, weddingID, requester uuid.UUID) error {
	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: wedding %s", services.ErrNotFound, weddingID)
		}
		return err
	}

	if wedding.HostID == requester {
		return nil
	}

	if _, err := s.guestRepo.GetByWeddingAndUser(ctx, weddingID, requester); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: not a member of this wedding", services.ErrPermissionDenied)
		}
		return err
	}
	return nil
}

func (s *GalleryServiceImpl) GetWeddingPhotos(ctx context.Context, weddingID uuid.UUID, eventID *uuid.UUID, page, limit int, requester uuid.UUID) ([]models.Photo, int64, error) {
	if err := s.authorizeView(ctx, weddingID, requester); err != nil {
		return nil, 0, err
	}

	offset, limit := normalizePage(page, limit)
	if eventID != nil {
		exists, err := s.weddingRepo.EventExists(ctx, weddingID, *eventID)
		if err != nil {
			return nil, 0, err
		}
		if !exists {
			return nil, 0, fmt.Errorf("%w: event does not belong to this wedding", services.ErrInvalidInput)
		}
	}

	return s.photoRepo.GetByWedding(ctx, weddingID, eventID, offset, limit)
}

func (s *GalleryServiceImpl) GetMyPhotos(ctx context.Context, userID uuid.UUID, weddingID *uuid.UUID, page, limit int) ([]models.Photo, int64, error) {
	if weddingID != nil {
		if err := s.authorizeView(ctx, *weddingID, userID); err != nil {
			return nil, 0, err
		}
	}

	offset, limit := normalizePage(page, limit)
	return s.tagRepo.GetPhotosForUser(ctx, userID, weddingID, offset, limit)
}

func (s *GalleryServiceImpl) GetProcessingStats(ctx context.Context, weddingID uuid.UUID, requester uuid.UUID) (*services.ProcessingStats, error) {
	if err := s.authorizeView(ctx, weddingID, requester); err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.GetByWedding(ctx, weddingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	failed, err := s.photoRepo.CountByWeddingAndStatus(ctx, weddingID, models.PhotoStatusFailed)
	if err != nil {
		return nil, err
	}

	result := &services.ProcessingStats{FailedPhotos: failed}
	if stats != nil {
		result.TotalPhotos = stats.TotalPhotos
		result.PendingPhotos = stats.PhotosPending
		result.ProcessedPhotos = stats.PhotosProcessed
		result.TotalFaceTags = stats.TotalFaceTags
	}
	return result, nil
}

func normalizePage(page, limit int) (offset, normalized int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}
