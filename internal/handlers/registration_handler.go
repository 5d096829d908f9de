package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codequest/resume-validator/internal/models"
	"codequest/resume-validator/internal/repositories"
)

type RegistrationHandler struct {
	regRepo repositories.RegistrationRepository
}

func NewRegistrationHandler(regRepo repositories.RegistrationRepository) *RegistrationHandler {
	return &RegistrationHandler{regRepo: regRepo}
}

// HandleGetStatus handles GET /api/registrations/:id. The UI polls this to
// reflect Processing/Accepted/Rejected.
func (h *RegistrationHandler) HandleGetStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	reg, err := h.regRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Registration not found",
		})
	}

	return c.JSON(models.RegistrationStatusResponse{
		ID:                  reg.ID,
		ResumeStatus:        reg.ResumeStatus,
		ResumeAttempts:      reg.ResumeAttempts,
		ResumeScore:         reg.ResumeScore,
		ResumeAIConfidence:  reg.ResumeAIConfidence,
		ResumeAIReason:      reg.ResumeAIReason,
		LastRejectionReason: reg.LastRejectionReason,
	})
}
