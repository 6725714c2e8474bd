package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-gallery/domain/dto"
	"wedding-gallery/domain/services"
	"wedding-gallery/pkg/utils"
)

type GalleryHandler struct {
	galleryService services.GalleryService
}

func NewGalleryHandler(galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
	}
}

// GetWeddingPhotos lists a wedding's photos, optionally filtered by event
func (h *GalleryHandler) GetWeddingPhotos(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	var eventID *uuid.UUID
	if raw := c.Query("event_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event ID", err)
		}
		eventID = &id
	}

	page, limit := parsePagination(c)
	photos, total, err := h.galleryService.GetWeddingPhotos(c.UserContext(), weddingID, eventID, page, limit, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Photos retrieved", dto.ToPhotoListResponse(photos, total, page, limit))
}

// GetMyPhotos lists photos the authenticated user appears in
func (h *GalleryHandler) GetMyPhotos(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var weddingID *uuid.UUID
	if raw := c.Query("wedding_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
		}
		weddingID = &id
	}

	page, limit := parsePagination(c)
	photos, total, err := h.galleryService.GetMyPhotos(c.UserContext(), user.ID, weddingID, page, limit)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Photos retrieved", dto.ToPhotoListResponse(photos, total, page, limit))
}

// GetProcessingStats returns the wedding's face-processing counters
func (h *GalleryHandler) GetProcessingStats(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	stats, err := h.galleryService.GetProcessingStats(c.UserContext(), weddingID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Processing stats retrieved", stats)
}

func parsePagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
