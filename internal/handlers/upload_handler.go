package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"codequest/resume-validator/internal/models"
	"codequest/resume-validator/internal/repositories"
	"codequest/resume-validator/internal/services"
)

type UploadHandler struct {
	regRepo        repositories.RegistrationRepository
	storageService services.StorageService
	queue          services.ValidationQueue
	maxFileSize    int64
	maxAttempts    int
}

func NewUploadHandler(
	regRepo repositories.RegistrationRepository,
	storageService services.StorageService,
	queue services.ValidationQueue,
	maxFileSize int64,
	maxAttempts int,
) *UploadHandler {
	return &UploadHandler{
		regRepo:        regRepo,
		storageService: storageService,
		queue:          queue,
		maxFileSize:    maxFileSize,
		maxAttempts:    maxAttempts,
	}
}

// HandleUpload handles POST /api/upload: stores the PDF, points the
// registration at it, and queues a validation job.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	reg, err := h.regRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Registration not found",
		})
	}

	// Resubmission quota: each terminal rejection charges an attempt.
	if reg.ResumeAttempts >= h.maxAttempts {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum upload attempts (%d) reached", h.maxAttempts),
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, _, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	resumeURL := h.storageService.PublicURL(filename)

	if err := h.regRepo.MarkProcessing(userID, resumeURL); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update registration",
		})
	}

	jobID, err := h.queue.Enqueue(c.Context(), models.ValidationJob{
		CandidateID: userID,
		ResumeURL:   resumeURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to queue validation job",
		})
	}

	log.Printf("📥 Resume uploaded for user %s, job %s queued\n", userID, jobID)

	return c.Status(fiber.StatusOK).JSON(models.UploadResponse{
		Success:   true,
		JobID:     jobID,
		ResumeURL: resumeURL,
	})
}
