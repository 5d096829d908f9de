package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"codequest/resume-validator/internal/models"
	"codequest/resume-validator/internal/services"
)

type EmailHandler struct {
	mailer services.MailerService
}

func NewEmailHandler(mailer services.MailerService) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

// HandleSendApprovalEmail handles POST /api/send-approval-email.
func (h *EmailHandler) HandleSendApprovalEmail(c *fiber.Ctx) error {
	var req models.ApprovalEmailRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if err := h.mailer.SendApprovalEmail(req); err != nil {
		log.Printf("❌ Error sending approval email to %s: %v\n", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to send email",
		})
	}

	log.Printf("📧 Approval email sent to %s\n", req.Email)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Email sent successfully",
	})
}
