package routes

import (
	"github.com/gofiber/fiber/v2"

	"wedding-gallery/interfaces/api/handlers"
	"wedding-gallery/interfaces/api/middleware"
	"wedding-gallery/pkg/config"
)

func SetupFaceRoutes(router fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	faces := router.Group("/faces")
	faces.Use(middleware.Protected(cfg.JWT.Secret))

	faces.Post("/enroll", h.Face.EnrollFace)
}
