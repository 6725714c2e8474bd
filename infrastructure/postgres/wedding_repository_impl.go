package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type WeddingRepositoryImpl struct {
	db *gorm.DB
}

func NewWeddingRepository(db *gorm.DB) repositories.WeddingRepository {
	return &WeddingRepositoryImpl{db: db}
}

func (r *WeddingRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error) {
	var wedding models.Wedding
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&wedding).Error
	if err != nil {
		return nil, err
	}
	return &wedding, nil
}

func (r *WeddingRepositoryImpl) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Wedding{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *WeddingRepositoryImpl) EventExists(ctx context.Context, weddingID, eventID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WeddingEvent{}).
		Where("id = ? AND wedding_id = ?", eventID, weddingID).
		Count(&count).Error
	return count > 0, err
}

func (r *WeddingRepositoryImpl) CountEvents(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WeddingEvent{}).
		Where("wedding_id = ?", weddingID).
		Count(&count).Error
	return count, err
}
