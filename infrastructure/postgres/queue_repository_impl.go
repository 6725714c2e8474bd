package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/repositories"
)

type QueueRepositoryImpl struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) repositories.QueueRepository {
	return &QueueRepositoryImpl{db: db}
}

func (r *QueueRepositoryImpl) Create(ctx context.Context, entry *models.AiQueueEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *QueueRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.AiQueueEntry, error) {
	var entry models.AiQueueEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *QueueRepositoryImpl) GetByPhoto(ctx context.Context, photoID uuid.UUID) (*models.AiQueueEntry, error) {
	var entry models.AiQueueEntry
	err := r.db.WithContext(ctx).Where("photo_id = ?", photoID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ClaimNext uses a conditional UPDATE with SKIP LOCKED so two consumer
// instances can never claim the same entry.
func (r *QueueRepositoryImpl) ClaimNext(ctx context.Context) (*models.AiQueueEntry, error) {
	var entry models.AiQueueEntry

	err := r.db.WithContext(ctx).Raw(`
		UPDATE ai_queue_entries
		SET status = ?, started_at = NOW(), updated_at = NOW()
		WHERE id = (
			SELECT id FROM ai_queue_entries
			WHERE status = ?
			ORDER BY priority DESC, created_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		models.QueueStatusProcessing, models.QueueStatusQueued,
	).Scan(&entry).Error
	if err != nil {
		return nil, err
	}

	if entry.ID == uuid.Nil {
		return nil, nil
	}
	return &entry, nil
}

func (r *QueueRepositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID, processingMs int64) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.AiQueueEntry{}).
		Where("id = ? AND status = ?", id, models.QueueStatusProcessing).
		Updates(map[string]interface{}{
			"status":        models.QueueStatusCompleted,
			"attempts":      gorm.Expr("attempts + 1"),
			"completed_at":  &now,
			"processing_ms": processingMs,
			"error_message": "",
			"updated_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("entry not in processing state")
	}
	return nil
}

// MarkFailed increments the attempt counter. Below MaxAttempts the entry
// goes back to queued; at MaxAttempts it becomes terminally failed and is
// never picked up again without a manual requeue.
func (r *QueueRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, processingMs int64) (models.QueueStatus, error) {
	var entry models.AiQueueEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", id, models.QueueStatusProcessing).First(&entry).Error; err != nil {
			return err
		}

		entry.Attempts++
		now := time.Now()

		updates := map[string]interface{}{
			"attempts":      entry.Attempts,
			"error_message": errMsg,
			"processing_ms": processingMs,
			"updated_at":    now,
		}
		if entry.Attempts >= entry.MaxAttempts {
			entry.Status = models.QueueStatusFailed
			updates["status"] = models.QueueStatusFailed
			updates["completed_at"] = &now
		} else {
			entry.Status = models.QueueStatusQueued
			updates["status"] = models.QueueStatusQueued
			updates["started_at"] = nil
		}

		return tx.Model(&models.AiQueueEntry{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return "", err
	}

	return entry.Status, nil
}

func (r *QueueRepositoryImpl) RequeueForPhoto(ctx context.Context, photoID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.AiQueueEntry{}).
		Where("photo_id = ? AND status = ?", photoID, models.QueueStatusFailed).
		Updates(map[string]interface{}{
			"status":        models.QueueStatusQueued,
			"attempts":      0,
			"error_message": "",
			"started_at":    nil,
			"completed_at":  nil,
			"updated_at":    time.Now(),
		}).Error
}

func (r *QueueRepositoryImpl) ResetStuckProcessing(ctx context.Context, threshold time.Duration) (int64, error) {
	cutoff := time.Now().Add(-threshold)

	result := r.db.WithContext(ctx).Model(&models.AiQueueEntry{}).
		Where("status = ?", models.QueueStatusProcessing).
		Where("updated_at < ?", cutoff).
		Updates(map[string]interface{}{
			"status":     models.QueueStatusQueued,
			"started_at": nil,
			"updated_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *QueueRepositoryImpl) CountByWeddingAndStatus(ctx context.Context, weddingID uuid.UUID, status models.QueueStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AiQueueEntry{}).
		Where("wedding_id = ? AND status = ?", weddingID, status).
		Count(&count).Error
	return count, err
}
