package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wedding-gallery/domain/services"
)

// Response is the envelope for all JSON API responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Response{
		Success: false,
		Message: message,
	})
}

// ServiceErrorResponse maps domain sentinel errors to HTTP statuses. The
// recognition service's human-readable rejection message is passed through
// via err; internals are never exposed beyond that.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrNoFaceDetected):
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, services.ErrPermissionDenied):
		return ErrorResponse(c, fiber.StatusForbidden, "Permission denied", err)
	case errors.Is(err, services.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, "Not found", err)
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return ErrorResponse(c, fiber.StatusBadGateway, "Upstream service unavailable", err)
	case errors.Is(err, services.ErrAttemptsExhausted):
		return ErrorResponse(c, fiber.StatusConflict, "Processing attempts exhausted", err)
	default:
		return ErrorResponse(c, fiber.StatusInternalServerError, "An error occurred", err)
	}
}
