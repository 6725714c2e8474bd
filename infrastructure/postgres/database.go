package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wedding-gallery/domain/models"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Wedding{},
		&models.WeddingEvent{},
		&models.Guest{},

		// Pipeline models (must come after Wedding/Guest)
		&models.Photo{},
		&models.AiQueueEntry{},
		&models.FaceSample{},
		&models.PhotoTag{},
		&models.WeddingStats{},
	); err != nil {
		return fmt.Errorf("failed to run auto migrations: %v", err)
	}

	// Constraints AutoMigrate cannot express
	migrations := []string{
		// Tags name at most one person
		`DO $$ BEGIN
			ALTER TABLE photo_tags ADD CONSTRAINT chk_photo_tags_one_person
				CHECK (guest_id IS NULL OR user_id IS NULL);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

		// A face sample identifies exactly one person
		`DO $$ BEGIN
			ALTER TABLE face_samples ADD CONSTRAINT chk_face_samples_one_person
				CHECK ((user_id IS NULL) <> (guest_id IS NULL));
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

		// Queue claim ordering
		`CREATE INDEX IF NOT EXISTS idx_queue_claim
			ON ai_queue_entries(status, priority DESC, created_at ASC)`,

		// My Photos lookup
		`CREATE INDEX IF NOT EXISTS idx_photo_tags_user_rejected
			ON photo_tags(user_id, rejected)`,
	}

	for _, sql := range migrations {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("migration failed: %v", err)
		}
	}

	return nil
}
