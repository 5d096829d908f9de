package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"codequest/resume-validator/internal/models"
	"codequest/resume-validator/internal/repositories"
	"codequest/resume-validator/internal/services"
)

type ValidationHandler struct {
	queue   services.ValidationQueue
	regRepo repositories.RegistrationRepository
}

func NewValidationHandler(
	queue services.ValidationQueue,
	regRepo repositories.RegistrationRepository,
) *ValidationHandler {
	return &ValidationHandler{
		queue:   queue,
		regRepo: regRepo,
	}
}

// HandleQueueValidation handles POST /api/queue-validation. It enqueues the
// job and answers immediately: the upload-triggering client shows a
// non-blocking Processing state while validation happens out of band.
func (h *ValidationHandler) HandleQueueValidation(c *fiber.Ctx) error {
	var req models.QueueValidationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.UserID == "" || req.ResumeURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing userId or resumeUrl",
		})
	}

	// Best effort: the record may already be Processing if the upload flow
	// made the initial transition. Last write wins either way.
	if err := h.regRepo.MarkProcessing(req.UserID, req.ResumeURL); err != nil {
		log.Printf("⚠️  Failed to mark registration %s processing: %v\n", req.UserID, err)
	}

	jobID, err := h.queue.Enqueue(c.Context(), models.ValidationJob{
		CandidateID: req.UserID,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to queue validation job",
		})
	}

	log.Printf("📥 Job %s queued for user %s\n", jobID, req.UserID)

	return c.Status(fiber.StatusOK).JSON(models.QueueValidationResponse{
		Success: true,
		Message: "Resume queued for validation",
		JobID:   jobID,
	})
}
