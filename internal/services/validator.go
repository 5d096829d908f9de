package services

import (
	"context"
	"fmt"
	"log"

	"codequest/resume-validator/internal/models"
	"codequest/resume-validator/internal/repositories"
)

// minTextLength is the threshold below which an extracted document is treated
// as empty or scanned rather than sent to the classifier.
const minTextLength = 50

const (
	reasonEmptyResume      = "Resume appears empty or scanned."
	reasonInsufficientText = "Insufficient text content."
)

// ValidatorService drives one job through the validation state machine:
// Received -> Extracting -> Classifying -> Updated, with an Errored escape
// from any state. Every path after dequeue ends in a terminal status write or
// a returned error that lets the queue redeliver; a dequeued job must never
// leave a record permanently stuck in Processing.
type ValidatorService interface {
	ProcessJob(ctx context.Context, job models.ValidationJob) error
}

type validatorService struct {
	repo       repositories.RegistrationRepository
	extractor  TextExtractor
	classifier ClassifierService
}

func NewValidatorService(
	repo repositories.RegistrationRepository,
	extractor TextExtractor,
	classifier ClassifierService,
) ValidatorService {
	return &validatorService{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
	}
}

func (v *validatorService) ProcessJob(ctx context.Context, job models.ValidationJob) error {
	log.Printf("🔄 Processing validation job %s for candidate %s\n", job.ID, job.CandidateID)

	// Extracting
	text, err := v.extractor.ExtractFromURL(ctx, job.ResumeURL)
	if err != nil {
		// Transient/system fault, not candidate fault: reject without
		// charging an attempt and consume the job.
		log.Printf("❌ Extraction failed for job %s: %v\n", job.ID, err)
		reason := fmt.Sprintf("System Error: %v", err)
		if storeErr := v.repo.RejectSystemError(job.CandidateID, reason); storeErr != nil {
			return fmt.Errorf("%w: %v", ErrRecordStore, storeErr)
		}
		return nil
	}

	if len(text) < minTextLength {
		// Candidate-supplied defect: charge an attempt. The classifier is
		// never consulted for a document this thin.
		log.Printf("⚠️  Job %s rejected: only %d characters extracted\n", job.ID, len(text))
		if storeErr := v.repo.RejectEmptyContent(job.CandidateID, reasonEmptyResume, reasonInsufficientText); storeErr != nil {
			return fmt.Errorf("%w: %v", ErrRecordStore, storeErr)
		}
		return nil
	}

	// Classifying
	verdict, err := v.classifier.Classify(ctx, text, ModeScored)
	if err != nil {
		// Transient dependency fault: leave the record in Processing and
		// propagate so the queue's retry policy can redeliver.
		log.Printf("❌ Classification failed for job %s: %v\n", job.ID, err)
		return err
	}

	// Updated
	update := repositories.VerdictUpdate{
		Score:      verdict.Score,
		Confidence: verdict.Confidence,
		Reason:     verdict.Reason,
	}

	if verdict.Valid {
		if storeErr := v.repo.Accept(job.CandidateID, update); storeErr != nil {
			return fmt.Errorf("%w: %v", ErrRecordStore, storeErr)
		}
		log.Printf("✅ Job %s accepted (score %d, confidence %.2f)\n", job.ID, verdict.Score, verdict.Confidence)
		return nil
	}

	if storeErr := v.repo.RejectVerdict(job.CandidateID, update); storeErr != nil {
		return fmt.Errorf("%w: %v", ErrRecordStore, storeErr)
	}
	log.Printf("✅ Job %s rejected by classifier: %s\n", job.ID, verdict.Reason)
	return nil
}
