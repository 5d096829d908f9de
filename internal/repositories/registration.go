package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"codequest/resume-validator/internal/models"
)

// VerdictUpdate carries the classifier fields folded into a registration on a
// terminal status write.
type VerdictUpdate struct {
	Score      int
	Confidence float64
	Reason     string
}

type RegistrationRepository interface {
	Create(reg *models.Registration) error
	FindByID(id string) (*models.Registration, error)

	// MarkProcessing is the initial transition performed by the upload flow:
	// points the record at the submitted file and stamps the attempt start.
	MarkProcessing(id string, resumeURL string) error

	// Accept writes the terminal Accepted state. Attempts are not charged.
	Accept(id string, verdict VerdictUpdate) error

	// RejectVerdict writes a terminal Rejected state from a classifier
	// verdict and charges one attempt.
	RejectVerdict(id string, verdict VerdictUpdate) error

	// RejectSystemError rejects without charging an attempt; the fault is the
	// system's, not the candidate's.
	RejectSystemError(id string, reason string) error

	// RejectEmptyContent rejects a candidate-supplied defect (empty or
	// scanned document) and charges one attempt.
	RejectEmptyContent(id string, lastReason, aiReason string) error

	// ForceReject resolves a stuck-Processing record without charging an
	// attempt. Used by the reconciliation reaper and the admin reset tool.
	ForceReject(id string, reason string) error

	FindStuckProcessing(cutoff time.Time, limit int) ([]models.Registration, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(reg *models.Registration) error {
	if err := r.db.Create(reg).Error; err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) FindByID(id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Where("id = ?", id).First(&reg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("registration not found")
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepository) MarkProcessing(id string, resumeURL string) error {
	now := time.Now()
	return r.update(id, map[string]interface{}{
		"resume_status":           models.StatusProcessing,
		"resume_url":              resumeURL,
		"processing_started_at":   now,
		"processing_completed_at": nil,
		"updated_at":              now,
	})
}

func (r *registrationRepository) Accept(id string, verdict VerdictUpdate) error {
	now := time.Now()
	return r.update(id, map[string]interface{}{
		"resume_status":           models.StatusAccepted,
		"resume_score":            verdict.Score,
		"resume_ai_confidence":    verdict.Confidence,
		"resume_ai_reason":        verdict.Reason,
		"processing_completed_at": now,
		"updated_at":              now,
	})
}

func (r *registrationRepository) RejectVerdict(id string, verdict VerdictUpdate) error {
	now := time.Now()
	return r.update(id, map[string]interface{}{
		"resume_status":           models.StatusRejected,
		"resume_url":              nil,
		"resume_attempts":         gorm.Expr("resume_attempts + 1"),
		"last_rejection_reason":   verdict.Reason,
		"resume_ai_reason":        verdict.Reason,
		"resume_ai_confidence":    verdict.Confidence,
		"resume_score":            verdict.Score,
		"processing_completed_at": now,
		"updated_at":              now,
	})
}

func (r *registrationRepository) RejectSystemError(id string, reason string) error {
	now := time.Now()
	return r.update(id, map[string]interface{}{
		"resume_status":           models.StatusRejected,
		"resume_url":              nil,
		"last_rejection_reason":   reason,
		"resume_ai_reason":        reason,
		"processing_completed_at": now,
		"updated_at":              now,
	})
}

func (r *registrationRepository) RejectEmptyContent(id string, lastReason, aiReason string) error {
	now := time.Now()
	return r.update(id, map[string]interface{}{
		"resume_status":           models.StatusRejected,
		"resume_url":              nil,
		"resume_attempts":         gorm.Expr("resume_attempts + 1"),
		"last_rejection_reason":   lastReason,
		"resume_ai_reason":        aiReason,
		"processing_completed_at": now,
		"updated_at":              now,
	})
}

func (r *registrationRepository) ForceReject(id string, reason string) error {
	now := time.Now()
	return r.update(id, map[string]interface{}{
		"resume_status":           models.StatusRejected,
		"last_rejection_reason":   reason,
		"resume_ai_reason":        reason,
		"processing_started_at":   nil,
		"processing_completed_at": now,
		"updated_at":              now,
	})
}

func (r *registrationRepository) FindStuckProcessing(cutoff time.Time, limit int) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.
		Where("resume_status = ? AND processing_started_at < ?", models.StatusProcessing, cutoff).
		Order("processing_started_at ASC").
		Limit(limit).
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stuck registrations: %w", err)
	}
	return regs, nil
}

func (r *registrationRepository) update(id string, updates map[string]interface{}) error {
	result := r.db.Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update registration: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("registration not found")
	}

	return nil
}
