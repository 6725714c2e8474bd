package routes

import (
	"github.com/gofiber/fiber/v2"

	"wedding-gallery/interfaces/api/handlers"
	"wedding-gallery/interfaces/api/middleware"
	"wedding-gallery/pkg/config"
)

func SetupPhotoRoutes(router fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	// Cross-wedding "My Photos" view
	photos := router.Group("/photos")
	photos.Use(middleware.Protected(cfg.JWT.Secret))
	photos.Get("/me", h.Gallery.GetMyPhotos)

	// Per-wedding photo pipeline
	wedding := router.Group("/weddings/:wedding_id/photos")
	wedding.Use(middleware.Protected(cfg.JWT.Secret))

	wedding.Post("/upload-url", h.Upload.RequestUploadURL) // Presigned PUT credential
	wedding.Post("/confirm", h.Upload.ConfirmUpload)       // Confirm direct-to-storage upload
	wedding.Post("/", h.Upload.DirectUpload)               // Legacy URL-based upload
	wedding.Post("/retry", h.Upload.RetryFailedPhotos)     // Host-only manual retry

	wedding.Get("/", h.Gallery.GetWeddingPhotos)
	wedding.Get("/stats", h.Gallery.GetProcessingStats)
}
