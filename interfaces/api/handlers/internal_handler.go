package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/services"
	"wedding-gallery/pkg/utils"
)

// InternalHandler serves the recognition consumer's service-to-service API.
// Every route behind it requires the shared service token, never a user JWT.
type InternalHandler struct {
	resultService services.RecognitionResultService
}

func NewInternalHandler(resultService services.RecognitionResultService) *InternalHandler {
	return &InternalHandler{
		resultService: resultService,
	}
}

// QueueEntryResponse is the consumer's view of one queue entry
type QueueEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	PhotoID      uuid.UUID `json:"photo_id"`
	WeddingID    uuid.UUID `json:"wedding_id"`
	Status       string    `json:"status"`
	Attempts     int       `json:"attempts"`
	MaxAttempts  int       `json:"max_attempts"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

func toQueueEntryResponse(e *models.AiQueueEntry) QueueEntryResponse {
	return QueueEntryResponse{
		ID:           e.ID,
		PhotoID:      e.PhotoID,
		WeddingID:    e.WeddingID,
		Status:       string(e.Status),
		Attempts:     e.Attempts,
		MaxAttempts:  e.MaxAttempts,
		ErrorMessage: e.ErrorMessage,
	}
}

// CompleteJobRequest reports the outcome of a claimed entry
type CompleteJobRequest struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
	ProcessingMs int64  `json:"processing_ms"`
}

// ReportPhotoStatusRequest updates a photo's processing outcome
type ReportPhotoStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=processing completed failed"`
	FacesDetected int    `json:"faces_detected"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// CreateTagRequest records one recognized face on a photo
type CreateTagRequest struct {
	PhotoID         uuid.UUID  `json:"photo_id" validate:"required"`
	GuestID         *uuid.UUID `json:"guest_id,omitempty"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Confidence      *float64   `json:"confidence,omitempty"`
	BboxX           float64    `json:"bbox_x"`
	BboxY           float64    `json:"bbox_y"`
	BboxWidth       float64    `json:"bbox_width"`
	BboxHeight      float64    `json:"bbox_height"`
	FaceEncodingID  string     `json:"face_encoding_id"`
	IsPrimaryPerson bool       `json:"is_primary_person"`
}

// ClaimJob hands the next queued entry to the consumer. 204 when empty.
func (h *InternalHandler) ClaimJob(c *fiber.Ctx) error {
	entry, err := h.resultService.ClaimNextJob(c.UserContext())
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	if entry == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return utils.SuccessResponse(c, "Job claimed", toQueueEntryResponse(entry))
}

// CompleteJob finalizes a claimed entry as success or failed attempt
func (h *InternalHandler) CompleteJob(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entry_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entry ID", err)
	}

	var req CompleteJobRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	entry, err := h.resultService.CompleteJob(c.UserContext(), entryID, services.CompleteJobInput{
		Success:      req.Success,
		ErrorMessage: req.ErrorMessage,
		ProcessingMs: req.ProcessingMs,
	})
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Job completed", toQueueEntryResponse(entry))
}

// ReportPhotoStatus records the photo-level processing outcome
func (h *InternalHandler) ReportPhotoStatus(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photo_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid photo ID", err)
	}

	var req ReportPhotoStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	err = h.resultService.ReportPhotoStatus(c.UserContext(), photoID, models.PhotoProcessingStatus(req.Status), req.FacesDetected, req.ErrorMessage)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Photo status updated", nil)
}

// CreateTag stores one face tag produced by the recognition pipeline
func (h *InternalHandler) CreateTag(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	tag, err := h.resultService.CreateTag(c.UserContext(), services.CreateTagInput{
		PhotoID:         req.PhotoID,
		GuestID:         req.GuestID,
		UserID:          req.UserID,
		Confidence:      req.Confidence,
		BboxX:           req.BboxX,
		BboxY:           req.BboxY,
		BboxWidth:       req.BboxWidth,
		BboxHeight:      req.BboxHeight,
		FaceEncodingID:  req.FaceEncodingID,
		IsPrimaryPerson: req.IsPrimaryPerson,
	})
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, "Tag created", fiber.Map{
		"id":       tag.ID,
		"photo_id": tag.PhotoID,
	})
}

// GetWeddingEncodings lists the enrolled guest encodings of a wedding
func (h *InternalHandler) GetWeddingEncodings(c *fiber.Ctx) error {
	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	encodings, err := h.resultService.GetWeddingEncodings(c.UserContext(), weddingID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Encodings retrieved", encodings)
}

// MarkGuestProcessed records that retroactive tagging finished for a guest
func (h *InternalHandler) MarkGuestProcessed(c *fiber.Ctx) error {
	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", err)
	}

	if err := h.resultService.MarkGuestProcessed(c.UserContext(), weddingID, userID); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Guest marked processed", nil)
}
