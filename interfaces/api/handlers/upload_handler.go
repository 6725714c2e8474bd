package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-gallery/domain/dto"
	"wedding-gallery/domain/services"
	"wedding-gallery/pkg/utils"
)

var validate = validator.New()

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// RequestUploadURLRequest asks for a presigned upload credential
type RequestUploadURLRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// ConfirmUploadRequest confirms a completed direct-to-storage upload
type ConfirmUploadRequest struct {
	StorageKey string     `json:"storage_key" validate:"required"`
	EventID    *uuid.UUID `json:"event_id,omitempty"`
	Caption    string     `json:"caption,omitempty" validate:"max=500"`
}

// DirectUploadRequest registers an already-hosted photo (legacy path)
type DirectUploadRequest struct {
	OriginalURL string     `json:"original_url" validate:"required,url"`
	EventID     *uuid.UUID `json:"event_id,omitempty"`
	Caption     string     `json:"caption,omitempty" validate:"max=500"`
}

// RequestUploadURL issues a presigned PUT credential for one photo
func (h *UploadHandler) RequestUploadURL(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	var req RequestUploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	cred, err := h.uploadService.RequestUploadCredential(c.UserContext(), weddingID, req.FileName, req.ContentType, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Upload credential issued", dto.ToUploadCredentialResponse(cred))
}

// ConfirmUpload registers the uploaded object as a Photo and queues tagging
func (h *UploadHandler) ConfirmUpload(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	var req ConfirmUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	photo, err := h.uploadService.ConfirmUpload(c.UserContext(), weddingID, services.ConfirmUploadInput{
		StorageKey: req.StorageKey,
		EventID:    req.EventID,
		Caption:    req.Caption,
	}, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, "Photo confirmed", dto.ToPhotoResponse(photo))
}

// DirectUpload registers a photo from a caller-provided URL
func (h *UploadHandler) DirectUpload(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	var req DirectUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	photo, err := h.uploadService.DirectUpload(c.UserContext(), weddingID, services.DirectUploadInput{
		OriginalURL: req.OriginalURL,
		EventID:     req.EventID,
		Caption:     req.Caption,
	}, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, "Photo uploaded", dto.ToPhotoResponse(photo))
}

// RetryFailedPhotos requeues terminally failed photos for reprocessing
func (h *UploadHandler) RetryFailedPhotos(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	weddingID, err := uuid.Parse(c.Params("wedding_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid wedding ID", err)
	}

	retried, err := h.uploadService.RetryFailedPhotos(c.UserContext(), weddingID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Failed photos requeued", fiber.Map{
		"retried": retried,
	})
}
