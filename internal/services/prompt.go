package services

import "fmt"

// EvalMode selects between lightweight screening and full evaluation. The two
// near-identical prompts the validator needs are built from a single template
// parameterized by mode.
type EvalMode string

const (
	// ModeBinary asks only for a valid/invalid call with confidence.
	ModeBinary EvalMode = "binary"
	// ModeScored additionally asks for a 0-10 quality score.
	ModeScored EvalMode = "scored"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildValidationPrompt creates the instruction prompt for resume
// classification. The output rules are rigid on purpose: the model must emit
// raw JSON so the response can be machine-parsed without scraping free text.
func (pb *PromptBuilder) BuildValidationPrompt(text string, mode EvalMode) string {
	if mode == ModeScored {
		return fmt.Sprintf(`You are an expert HR AI Resume Validator. Your task is to evaluate the provided resume text.

Rules:
1. A Resume/CV MUST contain: Contact Information, Education, and Skills/Experience.
2. Reject random text, code snippets, or unrelated documents.
3. If it is a Resume, output rigid JSON:
   { "valid": true, "score": 8, "confidence": 0.95, "reason": "Good structure, but lacks specific impact metrics." }
4. "score" should be an integer from 0 to 10 based on quality, completeness, and professionalism.
5. If NOT a Resume, output rigid JSON:
   { "valid": false, "score": 0, "confidence": 0.9, "reason": "Text appears to be random." }
6. Do NOT output markdown. Output ONLY JSON.

Input Text:
"""%s"""`, text)
	}

	return fmt.Sprintf(`You are an expert HR AI Resume Validator. Your task is to classify whether the provided text data belongs to a valid professional Resume/CV or not.

Rules:
1. A Resume/CV MUST contain: Contact Information (Email/Phone), Education History, and Skills or Experience.
2. Reject random text, code snippets, essays, generic articles, or unrelated documents.
3. If it is a Resume, output rigid JSON: { "valid": true, "confidence": 0.95, "reason": "Contains clear education and skills sections." }
4. If NOT a Resume, output rigid JSON: { "valid": false, "confidence": 0.9, "reason": "Text appears to be a random essay/article." }
5. Do NOT output markdown. Output ONLY JSON.

Input Text:
"""%s"""`, text)
}
