package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wedding-gallery/domain/dto"
	"wedding-gallery/domain/services"
	"wedding-gallery/pkg/utils"
)

type FaceHandler struct {
	enrollmentService services.EnrollmentService
}

func NewFaceHandler(enrollmentService services.EnrollmentService) *FaceHandler {
	return &FaceHandler{
		enrollmentService: enrollmentService,
	}
}

// EnrollFaceRequest submits a selfie for face enrollment
type EnrollFaceRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// EnrollFace enrolls the user's face sample and fans the encoding out to
// every wedding the user belongs to
func (h *FaceHandler) EnrollFace(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req EnrollFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	sample, err := h.enrollmentService.SubmitFaceSample(c.UserContext(), user.ID, req.ImageURL)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, "Face sample enrolled", dto.ToFaceSampleResponse(sample))
}
