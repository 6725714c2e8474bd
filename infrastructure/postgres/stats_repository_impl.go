package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type StatsRepositoryImpl struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) repositories.StatsRepository {
	return &StatsRepositoryImpl{db: db}
}

func (r *StatsRepositoryImpl) EnsureExists(ctx context.Context, weddingID uuid.UUID) error {
	stats := models.WeddingStats{
		ID:        uuid.New(),
		WeddingID: weddingID,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wedding_id"}},
			DoNothing: true,
		}).
		Create(&stats).Error
}

func (r *StatsRepositoryImpl) GetByWedding(ctx context.Context, weddingID uuid.UUID) (*models.WeddingStats, error) {
	var stats models.WeddingStats
	err := r.db.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepositoryImpl) IncrementPhotoUploaded(ctx context.Context, weddingID uuid.UUID, pending bool) error {
	updates := map[string]interface{}{
		"total_photos": gorm.Expr("total_photos + 1"),
		"updated_at":   time.Now(),
	}
	if pending {
		updates["photos_pending"] = gorm.Expr("photos_pending + 1")
	}
	return r.db.WithContext(ctx).Model(&models.WeddingStats{}).
		Where("wedding_id = ?", weddingID).
		Updates(updates).Error
}

func (r *StatsRepositoryImpl) IncrementPhotoPending(ctx context.Context, weddingID uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Model(&models.WeddingStats{}).
		Where("wedding_id = ?", weddingID).
		Updates(map[string]interface{}{
			"photos_pending": gorm.Expr("GREATEST(photos_pending + ?, 0)", delta),
			"updated_at":     time.Now(),
		}).Error
}

func (r *StatsRepositoryImpl) MarkPhotoProcessed(ctx context.Context, weddingID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.WeddingStats{}).
		Where("wedding_id = ?", weddingID).
		Updates(map[string]interface{}{
			"photos_pending":   gorm.Expr("GREATEST(photos_pending - 1, 0)"),
			"photos_processed": gorm.Expr("photos_processed + 1"),
			"updated_at":       time.Now(),
		}).Error
}

func (r *StatsRepositoryImpl) MarkPhotoFailed(ctx context.Context, weddingID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.WeddingStats{}).
		Where("wedding_id = ?", weddingID).
		Updates(map[string]interface{}{
			"photos_pending": gorm.Expr("GREATEST(photos_pending - 1, 0)"),
			"updated_at":     time.Now(),
		}).Error
}

func (r *StatsRepositoryImpl) IncrementFaceTags(ctx context.Context, weddingID uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Model(&models.WeddingStats{}).
		Where("wedding_id = ?", weddingID).
		Updates(map[string]interface{}{
			"total_face_tags": gorm.Expr("GREATEST(total_face_tags + ?, 0)", delta),
			"updated_at":      time.Now(),
		}).Error
}

func (r *StatsRepositoryImpl) Replace(ctx context.Context, stats *models.WeddingStats) error {
	stats.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(&models.WeddingStats{}).
		Where("wedding_id = ?", stats.WeddingID).
		Updates(map[string]interface{}{
			"total_photos":     stats.TotalPhotos,
			"photos_pending":   stats.PhotosPending,
			"photos_processed": stats.PhotosProcessed,
			"total_face_tags":  stats.TotalFaceTags,
			"guests_total":     stats.GuestsTotal,
			"guests_accepted":  stats.GuestsAccepted,
			"guests_declined":  stats.GuestsDeclined,
			"event_count":      stats.EventCount,
			"updated_at":       stats.UpdatedAt,
		}).Error
}
