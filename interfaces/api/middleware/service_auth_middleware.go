package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"wedding-gallery/pkg/utils"
)

// RequireServiceToken authenticates the recognition consumer on the
// internal API surface. The token is a shared secret distinct from the
// JWT secret; user credentials never pass this gate.
func RequireServiceToken(serviceToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if serviceToken == "" {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Internal API disabled", nil)
		}

		provided := c.Get("X-Service-Token")
		if provided == "" {
			return utils.UnauthorizedResponse(c, "Missing service token")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(serviceToken)) != 1 {
			return utils.UnauthorizedResponse(c, "Invalid service token")
		}

		return c.Next()
	}
}
