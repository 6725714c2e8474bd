package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type FaceSampleRepositoryImpl struct {
	db *gorm.DB
}

func NewFaceSampleRepository(db *gorm.DB) repositories.FaceSampleRepository {
	return &FaceSampleRepositoryImpl{db: db}
}

func (r *FaceSampleRepositoryImpl) Create(ctx context.Context, sample *models.FaceSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *FaceSampleRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.FaceSample, error) {
	var samples []models.FaceSample
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&samples).Error
	return samples, err
}

func (r *FaceSampleRepositoryImpl) ClearPrimary(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.FaceSample{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Updates(map[string]interface{}{
			"is_primary": false,
			"updated_at": time.Now(),
		}).Error
}
