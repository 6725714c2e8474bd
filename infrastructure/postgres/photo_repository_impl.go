package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type PhotoRepositoryImpl struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) repositories.PhotoRepository {
	return &PhotoRepositoryImpl{db: db}
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PhotoRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepositoryImpl) GetByStorageKey(ctx context.Context, key string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).Where("storage_key = ?", key).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepositoryImpl) GetByWedding(ctx context.Context, weddingID uuid.UUID, eventID *uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	var photos []models.Photo
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("wedding_id = ?", weddingID).
		Where("is_public = ? AND is_approved = ?", true, true)
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error

	return photos, total, err
}

func (r *PhotoRepositoryImpl) GetFailedByWedding(ctx context.Context, weddingID uuid.UUID, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Where("wedding_id = ? AND processing_status = ?", weddingID, models.PhotoStatusFailed).
		Order("created_at ASC").
		Limit(limit).
		Find(&photos).Error

	return photos, err
}

func (r *PhotoRepositoryImpl) UpdateProcessingResult(ctx context.Context, id uuid.UUID, status models.PhotoProcessingStatus, facesDetected int, errMsg string) (int64, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"processing_status": status,
		"faces_detected":    facesDetected,
		"processing_error":  errMsg,
		"processed_at":      &now,
		"updated_at":        now,
	}

	// Guard against double application: terminal photos stay terminal.
	result := r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("id = ?", id).
		Where("processing_status IN ?", []models.PhotoProcessingStatus{models.PhotoStatusPending, models.PhotoStatusProcessing}).
		Updates(updates)

	return result.RowsAffected, result.Error
}

func (r *PhotoRepositoryImpl) ResetToPending(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": models.PhotoStatusPending,
			"processing_error":  "",
			"updated_at":        time.Now(),
		}).Error
}

func (r *PhotoRepositoryImpl) CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("wedding_id = ?", weddingID).
		Count(&count).Error
	return count, err
}

func (r *PhotoRepositoryImpl) CountByWeddingAndStatus(ctx context.Context, weddingID uuid.UUID, status models.PhotoProcessingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("wedding_id = ? AND processing_status = ?", weddingID, status).
		Count(&count).Error
	return count, err
}
