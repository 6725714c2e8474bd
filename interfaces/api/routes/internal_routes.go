package routes

import (
	"github.com/gofiber/fiber/v2"

	"wedding-gallery/interfaces/api/handlers"
	"wedding-gallery/interfaces/api/middleware"
	"wedding-gallery/pkg/config"
)

// SetupInternalRoutes wires the recognition consumer's surface. Guarded by
// the shared service token, never by user JWTs.
func SetupInternalRoutes(router fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	internal := router.Group("/internal")
	internal.Use(middleware.RequireServiceToken(cfg.Internal.ServiceToken))

	internal.Post("/queue/claim", h.Internal.ClaimJob)
	internal.Post("/queue/:entry_id/complete", h.Internal.CompleteJob)

	internal.Post("/photos/:photo_id/status", h.Internal.ReportPhotoStatus)
	internal.Post("/tags", h.Internal.CreateTag)

	internal.Get("/weddings/:wedding_id/encodings", h.Internal.GetWeddingEncodings)
	internal.Post("/weddings/:wedding_id/guests/:user_id/processed", h.Internal.MarkGuestProcessed)
}
