package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"codequest/resume-validator/internal/models"
	"codequest/resume-validator/internal/repositories"
	"codequest/resume-validator/internal/services"
)

// Shared fakes for handler tests.

type fakeQueue struct {
	enqueued   []models.ValidationJob
	enqueueErr error
}

func (f *fakeQueue) Enqueue(ctx context.Context, job models.ValidationJob) (string, error) {
	if f.enqueueErr != nil {
		return "", f.enqueueErr
	}
	if job.ID == "" {
		job.ID = "job-test-1"
	}
	f.enqueued = append(f.enqueued, job)
	return job.ID, nil
}

func (f *fakeQueue) Receive(ctx context.Context) (*services.Delivery, error) {
	return nil, nil
}

type fakeRepo struct {
	registrations map[string]*models.Registration
	marked        map[string]string
	markErr       error
}

func newFakeRepo(regs ...*models.Registration) *fakeRepo {
	f := &fakeRepo{
		registrations: make(map[string]*models.Registration),
		marked:        make(map[string]string),
	}
	for _, reg := range regs {
		f.registrations[reg.ID] = reg
	}
	return f
}

func (f *fakeRepo) Create(reg *models.Registration) error {
	f.registrations[reg.ID] = reg
	return nil
}

func (f *fakeRepo) FindByID(id string) (*models.Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, errors.New("registration not found")
	}
	return reg, nil
}

func (f *fakeRepo) MarkProcessing(id string, resumeURL string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked[id] = resumeURL
	return nil
}

func (f *fakeRepo) Accept(id string, verdict repositories.VerdictUpdate) error        { return nil }
func (f *fakeRepo) RejectVerdict(id string, verdict repositories.VerdictUpdate) error { return nil }
func (f *fakeRepo) RejectSystemError(id string, reason string) error                  { return nil }
func (f *fakeRepo) RejectEmptyContent(id string, lastReason, aiReason string) error   { return nil }
func (f *fakeRepo) ForceReject(id string, reason string) error                        { return nil }

func (f *fakeRepo) FindStuckProcessing(cutoff time.Time, limit int) ([]models.Registration, error) {
	return nil, nil
}

type fakeStorage struct {
	saveErr error
	deleted []string
}

func (f *fakeStorage) SaveResume(file *multipart.FileHeader) (string, string, error) {
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	return "resume_test.pdf", "/tmp/uploads/resume_test.pdf", nil
}

func (f *fakeStorage) PublicURL(filename string) string {
	return "http://localhost:5000/uploads/" + filename
}

func (f *fakeStorage) DeleteFile(filename string) error {
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeStorage) EnsureUploadDir() error { return nil }

type fakeMailer struct {
	sent    []models.ApprovalEmailRequest
	sendErr error
}

func (f *fakeMailer) SendApprovalEmail(req models.ApprovalEmailRequest) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, req)
	return nil
}
