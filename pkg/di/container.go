package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"wedding-gallery/application/serviceimpl"
	"wedding-gallery/domain/repositories"
	"wedding-gallery/domain/services"
	"wedding-gallery/infrastructure/postgres"
	"wedding-gallery/infrastructure/recognition"
	"wedding-gallery/infrastructure/redis"
	"wedding-gallery/infrastructure/storage"
	"wedding-gallery/infrastructure/worker"
	"wedding-gallery/interfaces/api/handlers"
	"wedding-gallery/pkg/config"
	"wedding-gallery/pkg/logger"
	"wedding-gallery/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB                *gorm.DB
	RedisClient       *redis.RedisClient
	ObjectStorage     storage.ObjectStorage
	RecognitionClient recognition.Client
	EventScheduler    scheduler.EventScheduler

	// Repositories
	UserRepository       repositories.UserRepository
	WeddingRepository    repositories.WeddingRepository
	GuestRepository      repositories.GuestRepository
	PhotoRepository      repositories.PhotoRepository
	QueueRepository      repositories.QueueRepository
	TagRepository        repositories.TagRepository
	FaceSampleRepository repositories.FaceSampleRepository
	StatsRepository      repositories.StatsRepository

	// Services
	UploadService            services.UploadService
	GalleryService           services.GalleryService
	EnrollmentService        services.EnrollmentService
	RecognitionResultService services.RecognitionResultService
	StatsService             services.StatsService

	// Workers
	Dispatcher *worker.TriggerDispatcher
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", nil)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis (optional; dedupe degrades without it)
	redisClient, err := redis.NewRedisClient(&c.Config.Redis)
	if err != nil {
		logger.StartupWarn("redis_connection_failed", "Redis connection failed, trigger dedupe disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.RedisClient = redisClient
		logger.Startup("redis_connected", "Redis connected", nil)
	}

	// Initialize Object Storage
	objectStorage, err := storage.NewS3Storage(&c.Config.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.ObjectStorage = objectStorage
	logger.Startup("storage_initialized", "Object storage initialized", map[string]interface{}{
		"bucket": c.Config.Storage.Bucket,
	})

	// Initialize Recognition Client (empty URL means offline mode)
	if c.Config.Recognition.BaseURL != "" {
		c.RecognitionClient = recognition.NewHTTPClient(
			c.Config.Recognition.BaseURL,
			time.Duration(c.Config.Recognition.TimeoutSeconds)*time.Second,
		)
		logger.Startup("recognition_initialized", "Recognition client initialized", map[string]interface{}{
			"base_url": c.Config.Recognition.BaseURL,
		})
	} else {
		logger.StartupWarn("recognition_offline", "Recognition service not configured, running in offline mode", nil)
	}

	// Trigger dispatcher only makes sense with a recognition service
	if c.RecognitionClient != nil {
		c.Dispatcher = worker.NewTriggerDispatcher(c.RecognitionClient, c.RedisClient)
		c.Dispatcher.Start()
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.WeddingRepository = postgres.NewWeddingRepository(c.DB)
	c.GuestRepository = postgres.NewGuestRepository(c.DB)
	c.PhotoRepository = postgres.NewPhotoRepository(c.DB)
	c.QueueRepository = postgres.NewQueueRepository(c.DB)
	c.TagRepository = postgres.NewTagRepository(c.DB)
	c.FaceSampleRepository = postgres.NewFaceSampleRepository(c.DB)
	c.StatsRepository = postgres.NewStatsRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	presignTTL := time.Duration(c.Config.Storage.PresignTTLMin) * time.Minute
	encodeTimeout := time.Duration(c.Config.Recognition.TimeoutSeconds) * time.Second

	c.UploadService = serviceimpl.NewUploadService(
		c.PhotoRepository,
		c.QueueRepository,
		c.GuestRepository,
		c.WeddingRepository,
		c.StatsRepository,
		c.ObjectStorage,
		c.Dispatcher,
		presignTTL,
	)

	c.GalleryService = serviceimpl.NewGalleryService(
		c.PhotoRepository,
		c.TagRepository,
		c.GuestRepository,
		c.WeddingRepository,
		c.StatsRepository,
	)

	c.EnrollmentService = serviceimpl.NewEnrollmentService(
		c.UserRepository,
		c.GuestRepository,
		c.FaceSampleRepository,
		c.RecognitionClient,
		c.Dispatcher,
		encodeTimeout,
	)

	c.RecognitionResultService = serviceimpl.NewRecognitionResultService(
		c.QueueRepository,
		c.PhotoRepository,
		c.TagRepository,
		c.GuestRepository,
		c.StatsRepository,
	)

	c.StatsService = serviceimpl.NewStatsService(
		c.WeddingRepository,
		c.PhotoRepository,
		c.TagRepository,
		c.GuestRepository,
		c.StatsRepository,
	)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", nil)

	// Stats reconciliation: recount aggregates from source tables so
	// counter drift never becomes permanent.
	err := c.EventScheduler.AddJob("stats-reconcile", c.Config.Jobs.ReconcileCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := c.StatsService.ReconcileAll(ctx); err != nil {
			logger.SchedulerError("stats_reconcile_error", "Stats reconciliation failed", err, nil)
		}
	})
	if err != nil {
		logger.StartupWarn("stats_reconcile_schedule_failed", "Failed to schedule stats reconciliation", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Startup("stats_reconcile_scheduled", "Stats reconciliation scheduled", map[string]interface{}{"cron": c.Config.Jobs.ReconcileCron})
	}

	// Queue sweeper: requeue entries stuck in processing, e.g. after a
	// consumer crash mid-job.
	threshold := time.Duration(c.Config.Jobs.StuckThresholdMin) * time.Minute
	err = c.EventScheduler.AddJob("queue-sweep", c.Config.Jobs.SweepCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		reset, err := c.QueueRepository.ResetStuckProcessing(ctx, threshold)
		if err != nil {
			logger.SchedulerError("queue_sweep_error", "Queue sweep failed", err, nil)
			return
		}
		if reset > 0 {
			logger.Scheduler("queue_sweep_done", "Requeued stuck entries", map[string]interface{}{"count": reset})
		}
	})
	if err != nil {
		logger.StartupWarn("queue_sweep_schedule_failed", "Failed to schedule queue sweep", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Startup("queue_sweep_scheduled", "Queue sweep scheduled", map[string]interface{}{"cron": c.Config.Jobs.SweepCron})
	}

	return nil
}

// GetConfig returns the loaded configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices returns the services needed by HTTP handlers
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UploadService:            c.UploadService,
		GalleryService:           c.GalleryService,
		EnrollmentService:        c.EnrollmentService,
		RecognitionResultService: c.RecognitionResultService,
	}
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop trigger dispatcher
	if c.Dispatcher != nil {
		if c.Dispatcher.IsRunning() {
			c.Dispatcher.Stop()
		}
	}

	// Stop scheduler
	if c.EventScheduler != nil {
		if c.EventScheduler.IsRunning() {
			c.EventScheduler.Stop()
			logger.Startup("scheduler_stopped", "Event scheduler stopped", nil)
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	// Close database connection
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	return nil
}
