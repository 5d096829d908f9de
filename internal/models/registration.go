package models

import "time"

type ResumeStatus string

const (
	StatusNoResume   ResumeStatus = "NoResume"
	StatusProcessing ResumeStatus = "Processing"
	StatusAccepted   ResumeStatus = "Accepted"
	StatusRejected   ResumeStatus = "Rejected"
)

// Registration is the durable per-candidate record. The validation worker is
// the only writer for terminal states; the upload flow performs the initial
// transition into Processing. Updates are partial and last-write-wins.
type Registration struct {
	ID         string `gorm:"type:text;primary_key" json:"id"`
	Name       string `gorm:"type:text" json:"name"`
	Email      string `gorm:"type:text" json:"email"`
	RollNumber string `gorm:"type:text" json:"roll_number"`

	ResumeStatus        ResumeStatus `gorm:"type:text;not null;default:'NoResume'" json:"resume_status"`
	ResumeURL           *string      `gorm:"type:text" json:"resume_url,omitempty"`
	ResumeAttempts      int          `gorm:"not null;default:0" json:"resume_attempts"`
	LastRejectionReason string       `gorm:"type:text" json:"last_rejection_reason,omitempty"`
	ResumeAIReason      string       `gorm:"type:text" json:"resume_ai_reason,omitempty"`
	ResumeAIConfidence  float64      `json:"resume_ai_confidence"`
	ResumeScore         int          `json:"resume_score"`

	ProcessingStartedAt   *time.Time `gorm:"type:timestamp" json:"processing_started_at,omitempty"`
	ProcessingCompletedAt *time.Time `gorm:"type:timestamp" json:"processing_completed_at,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Registration) TableName() string {
	return "registrations"
}
