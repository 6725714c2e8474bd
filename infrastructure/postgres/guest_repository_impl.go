package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type GuestRepositoryImpl struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) repositories.GuestRepository {
	return &GuestRepositoryImpl{db: db}
}

func (r *GuestRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepositoryImpl) GetByWeddingAndUser(ctx context.Context, weddingID, userID uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Where("wedding_id = ? AND user_id = ?", weddingID, userID).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&guests).Error
	return guests, err
}

func (r *GuestRepositoryImpl) GetEncodingsByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Where("face_encoding_id <> ''").
		Find(&guests).Error
	return guests, err
}

func (r *GuestRepositoryImpl) UpdateFaceEncoding(ctx context.Context, guestID uuid.UUID, encodingID string) error {
	return r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("id = ?", guestID).
		Updates(map[string]interface{}{
			"face_encoding_id":     encodingID,
			"face_sample_provided": true,
			"photos_processed":     false,
			"updated_at":           time.Now(),
		}).Error
}

func (r *GuestRepositoryImpl) MarkPhotosProcessed(ctx context.Context, weddingID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("wedding_id = ? AND user_id = ?", weddingID, userID).
		Updates(map[string]interface{}{
			"photos_processed": true,
			"updated_at":       time.Now(),
		}).Error
}

func (r *GuestRepositoryImpl) CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("wedding_id = ?", weddingID).
		Count(&count).Error
	return count, err
}

func (r *GuestRepositoryImpl) CountByWeddingAndRSVP(ctx context.Context, weddingID uuid.UUID, status models.RSVPStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("wedding_id = ? AND rsvp_status = ?", weddingID, status).
		Count(&count).Error
	return count, err
}
