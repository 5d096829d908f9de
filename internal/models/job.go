package models

// ValidationJob is one unit of queued work: a candidate and the document to
// validate. It carries no derived state and is idempotent to reprocess:
// a redelivery simply overwrites the registration with a fresh verdict.
type ValidationJob struct {
	ID          string `json:"id"`
	CandidateID string `json:"candidate_id"`
	ResumeURL   string `json:"resume_url"`

	// Deliveries counts handler attempts, bumped by the queue on retry.
	Deliveries int `json:"deliveries"`
}
