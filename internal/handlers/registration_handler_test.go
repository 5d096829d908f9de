package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codequest/resume-validator/internal/models"
)

func registrationApp(repo *fakeRepo) *fiber.App {
	app := fiber.New()
	handler := NewRegistrationHandler(repo)
	app.Get("/api/registrations/:id", handler.HandleGetStatus)
	return app
}

func TestGetStatusFound(t *testing.T) {
	repo := newFakeRepo(&models.Registration{
		ID:                 "cand-1",
		ResumeStatus:       models.StatusAccepted,
		ResumeAttempts:     1,
		ResumeScore:        8,
		ResumeAIConfidence: 0.95,
		ResumeAIReason:     "Good structure.",
	})
	app := registrationApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/registrations/cand-1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.RegistrationStatusResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "cand-1", body.ID)
	assert.Equal(t, models.StatusAccepted, body.ResumeStatus)
	assert.Equal(t, 8, body.ResumeScore)
	assert.Equal(t, 0.95, body.ResumeAIConfidence)
}

func TestGetStatusNotFound(t *testing.T) {
	app := registrationApp(newFakeRepo())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/registrations/ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
