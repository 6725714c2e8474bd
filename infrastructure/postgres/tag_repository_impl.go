package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type TagRepositoryImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) repositories.TagRepository {
	return &TagRepositoryImpl{db: db}
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *models.PhotoTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *TagRepositoryImpl) GetByPhoto(ctx context.Context, photoID uuid.UUID) ([]models.PhotoTag, error) {
	var tags []models.PhotoTag
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("created_at ASC").
		Find(&tags).Error
	return tags, err
}

// GetPhotosForUser is the live "My Photos" query: photos joined through
// the user's non-rejected tags, never materialized.
func (r *TagRepositoryImpl) GetPhotosForUser(ctx context.Context, userID uuid.UUID, weddingID *uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	var photos []models.Photo
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Photo{}).
		Joins("JOIN photo_tags ON photo_tags.photo_id = photos.id").
		Where("photo_tags.user_id = ? AND photo_tags.rejected = ?", userID, false).
		Where("photos.is_public = ? AND photos.is_approved = ?", true, true)
	if weddingID != nil {
		query = query.Where("photos.wedding_id = ?", *weddingID)
	}

	if err := query.Distinct("photos.*").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Distinct("photos.*").
		Order("photos.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error

	return photos, total, err
}

func (r *TagRepositoryImpl) CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PhotoTag{}).
		Where("wedding_id = ?", weddingID).
		Count(&count).Error
	return count, err
}
