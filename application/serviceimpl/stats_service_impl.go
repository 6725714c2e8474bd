package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
	"wedding-gallery/domain/services"
	"wedding-gallery/pkg/logger"
)

type StatsServiceImpl struct {
	weddingRepo repositories.WeddingRepository
	photoRepo   repositories.PhotoRepository
	tagRepo     repositories.TagRepository
	guestRepo   repositories.GuestRepository
	statsRepo   repositories.StatsRepository
}

func NewStatsService(
	weddingRepo repositories.WeddingRepository,
	photoRepo repositories.PhotoRepository,
	tagRepo repositories.TagRepository,
	guestRepo repositories.GuestRepository,
	statsRepo repositories.StatsRepository,
) services.StatsService {
	return &StatsServiceImpl{
		weddingRepo: weddingRepo,
		photoRepo:   photoRepo,
		tagRepo:     tagRepo,
		guestRepo:   guestRepo,
		statsRepo:   statsRepo,
	}
}

// ReconcileWedding recounts the wedding's aggregates from source tables
// and overwrites the stats row. Drift from lost increments heals here.
func (s *StatsServiceImpl) ReconcileWedding(ctx context.Context, weddingID uuid.UUID) error {
	if err := s.statsRepo.EnsureExists(ctx, weddingID); err != nil {
		return err
	}

	totalPhotos, err := s.photoRepo.CountByWedding(ctx, weddingID)
	if err != nil {
		return err
	}
	pending, err := s.photoRepo.CountByWeddingAndStatus(ctx, weddingID, models.PhotoStatusPending)
	if err != nil {
		return err
	}
	processing, err := s.photoRepo.CountByWeddingAndStatus(ctx, weddingID, models.PhotoStatusProcessing)
	if err != nil {
		return err
	}
	processed, err := s.photoRepo.CountByWeddingAndStatus(ctx, weddingID, models.PhotoStatusCompleted)
	if err != nil {
		return err
	}
	totalTags, err := s.tagRepo.CountByWedding(ctx, weddingID)
	if err != nil {
		return err
	}
	guestsTotal, err := s.guestRepo.CountByWedding(ctx, weddingID)
	if err != nil {
		return err
	}
	guestsAccepted, err := s.guestRepo.CountByWeddingAndRSVP(ctx, weddingID, models.RSVPAccepted)
	if err != nil {
		return err
	}
	guestsDeclined, err := s.guestRepo.CountByWeddingAndRSVP(ctx, weddingID, models.RSVPDeclined)
	if err != nil {
		return err
	}
	eventCount, err := s.weddingRepo.CountEvents(ctx, weddingID)
	if err != nil {
		return err
	}

	stats := &models.WeddingStats{
		WeddingID:       weddingID,
		TotalPhotos:     totalPhotos,
		PhotosPending:   pending + processing,
		PhotosProcessed: processed,
		TotalFaceTags:   totalTags,
		GuestsTotal:     guestsTotal,
		GuestsAccepted:  guestsAccepted,
		GuestsDeclined:  guestsDeclined,
		EventCount:      eventCount,
	}

	if err := s.statsRepo.Replace(ctx, stats); err != nil {
		return err
	}

	logger.Stats("reconcile", "Wedding stats reconciled", map[string]interface{}{
		"wedding_id":       weddingID.String(),
		"total_photos":     totalPhotos,
		"photos_pending":   stats.PhotosPending,
		"photos_processed": processed,
		"total_face_tags":  totalTags,
	})
	return nil
}

func (s *StatsServiceImpl) ReconcileAll(ctx context.Context) error {
	ids, err := s.weddingRepo.ListActiveIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.ReconcileWedding(ctx, id); err != nil {
			logger.StatsError("reconcile", "Failed to reconcile wedding", err, map[string]interface{}{
				"wedding_id": id.String(),
			})
		}
	}
	return nil
}
