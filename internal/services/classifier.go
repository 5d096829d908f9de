package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// promptInputLimit bounds model latency and cost by evaluating a consistent
// window of the document.
const promptInputLimit = 3000

// Verdict is the classifier's structured judgment of an extracted text. It is
// never persisted on its own; the worker folds it into the registration.
type Verdict struct {
	Valid      bool
	Score      int
	Confidence float64
	Reason     string
}

type ClassifierService interface {
	Classify(ctx context.Context, text string, mode EvalMode) (*Verdict, error)
}

type ollamaClassifier struct {
	host          string
	model         string
	httpClient    *http.Client
	promptBuilder *PromptBuilder
}

func NewClassifierService(host, model string, timeout time.Duration) ClassifierService {
	return &ollamaClassifier{
		host:          host,
		model:         model,
		httpClient:    &http.Client{Timeout: timeout},
		promptBuilder: NewPromptBuilder(),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// verdictPayload uses pointers so absent keys are distinguishable from zero
// values; the contract requires the model to emit every key for its mode.
type verdictPayload struct {
	Valid      *bool    `json:"valid"`
	Score      *int     `json:"score"`
	Confidence *float64 `json:"confidence"`
	Reason     *string  `json:"reason"`
}

// Classify truncates the text to the evaluation window, prompts the inference
// endpoint for JSON-formatted non-streaming output, and parses the verdict.
// Range checks are deliberately not performed here; out-of-range values pass
// through to the caller.
func (c *ollamaClassifier) Classify(ctx context.Context, text string, mode EvalMode) (*Verdict, error) {
	if len(text) > promptInputLimit {
		text = text[:promptInputLimit]
	}

	prompt := c.promptBuilder.BuildValidationPrompt(text, mode)

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrClassifier, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrClassifier, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: inference endpoint unreachable: %v", ErrClassifier, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrClassifier, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: inference endpoint returned status %d", ErrClassifier, resp.StatusCode)
	}

	var outer generateResponse
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("%w: malformed endpoint response: %v", ErrClassifier, err)
	}

	return c.parseVerdict(outer.Response, mode)
}

func (c *ollamaClassifier) parseVerdict(response string, mode EvalMode) (*Verdict, error) {
	var payload verdictPayload
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		return nil, fmt.Errorf("%w: model output is not valid JSON: %v", ErrClassifier, err)
	}

	if payload.Valid == nil {
		return nil, fmt.Errorf("%w: model output missing required key %q", ErrClassifier, "valid")
	}
	if payload.Reason == nil {
		return nil, fmt.Errorf("%w: model output missing required key %q", ErrClassifier, "reason")
	}
	if payload.Confidence == nil {
		return nil, fmt.Errorf("%w: model output missing required key %q", ErrClassifier, "confidence")
	}
	if mode == ModeScored && payload.Score == nil {
		return nil, fmt.Errorf("%w: model output missing required key %q", ErrClassifier, "score")
	}

	verdict := &Verdict{
		Valid:      *payload.Valid,
		Confidence: *payload.Confidence,
		Reason:     *payload.Reason,
	}
	if payload.Score != nil {
		verdict.Score = *payload.Score
	}

	return verdict, nil
}
