package models

type QueueValidationRequest struct {
	UserID    string `json:"userId"`
	ResumeURL string `json:"resumeUrl"`
}

type QueueValidationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   string `json:"jobId"`
}

type UploadResponse struct {
	Success   bool   `json:"success"`
	JobID     string `json:"jobId"`
	ResumeURL string `json:"resumeUrl"`
}

type RegistrationStatusResponse struct {
	ID                  string       `json:"id"`
	ResumeStatus        ResumeStatus `json:"resumeStatus"`
	ResumeAttempts      int          `json:"resumeAttempts"`
	ResumeScore         int          `json:"resumeScore"`
	ResumeAIConfidence  float64      `json:"resumeAIConfidence"`
	ResumeAIReason      string       `json:"resumeAIReason,omitempty"`
	LastRejectionReason string       `json:"lastRejectionReason,omitempty"`
}

type ApprovalEmailRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	RollNumber string `json:"rollNumber"`
	Password   string `json:"password"`
	LoginURL   string `json:"loginUrl"`
}
