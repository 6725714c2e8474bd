package routes

import (
	"github.com/gofiber/fiber/v2"

	"wedding-gallery/interfaces/api/handlers"
	"wedding-gallery/interfaces/api/middleware"
	"wedding-gallery/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config) {
	// Setup health and root routes
	SetupHealthRoutes(app, h.Health)

	// API version group
	api := app.Group("/api/v1")
	api.Use(middleware.RateLimiter(&cfg.RateLimit))

	// Setup all route groups
	SetupPhotoRoutes(api, h, cfg)
	SetupFaceRoutes(api, h, cfg)
	SetupInternalRoutes(api, h, cfg)
}
