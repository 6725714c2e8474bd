package handlers

import (
	"gorm.io/gorm"

	"wedding-gallery/domain/services"
	"wedding-gallery/infrastructure/recognition"
	"wedding-gallery/infrastructure/redis"
)

// Services contains all the services needed for handlers
type Services struct {
	UploadService            services.UploadService
	GalleryService           services.GalleryService
	EnrollmentService        services.EnrollmentService
	RecognitionResultService services.RecognitionResultService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	UploadHandler   *UploadHandler
	GalleryHandler  *GalleryHandler
	FaceHandler     *FaceHandler
	InternalHandler *InternalHandler
	HealthHandler   *HealthHandler

	// Short accessors for routes
	Upload   *UploadHandler
	Gallery  *GalleryHandler
	Face     *FaceHandler
	Internal *InternalHandler
	Health   *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(svcs *Services, db *gorm.DB, redisClient *redis.RedisClient, recognizer recognition.Client) *Handlers {
	uploadHandler := NewUploadHandler(svcs.UploadService)
	galleryHandler := NewGalleryHandler(svcs.GalleryService)
	faceHandler := NewFaceHandler(svcs.EnrollmentService)
	internalHandler := NewInternalHandler(svcs.RecognitionResultService)
	healthHandler := NewHealthHandler(db, redisClient, recognizer)

	return &Handlers{
		UploadHandler:   uploadHandler,
		GalleryHandler:  galleryHandler,
		FaceHandler:     faceHandler,
		InternalHandler: internalHandler,
		HealthHandler:   healthHandler,

		// Short accessors
		Upload:   uploadHandler,
		Gallery:  galleryHandler,
		Face:     faceHandler,
		Internal: internalHandler,
		Health:   healthHandler,
	}
}
