package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOllama answers /api/generate with a canned inner JSON document and
// captures the prompt it was asked to evaluate.
func fakeOllama(t *testing.T, status int, innerJSON string, lastPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		if lastPrompt != nil {
			*lastPrompt = req.Prompt
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(generateResponse{Response: innerJSON})
	}))
}

func TestClassifyScoredHappyPath(t *testing.T) {
	inner := `{"valid": true, "score": 8, "confidence": 0.95, "reason": "Solid resume."}`
	server := fakeOllama(t, http.StatusOK, inner, nil)
	defer server.Close()

	classifier := NewClassifierService(server.URL, "qwen2:7b", 5*time.Second)
	verdict, err := classifier.Classify(context.Background(), validResumeText(), ModeScored)

	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, 8, verdict.Score)
	assert.Equal(t, 0.95, verdict.Confidence)
	assert.Equal(t, "Solid resume.", verdict.Reason)
}

func TestClassifyBinaryHappyPathScoreDefaultsZero(t *testing.T) {
	inner := `{"valid": false, "confidence": 0.9, "reason": "Random essay."}`
	server := fakeOllama(t, http.StatusOK, inner, nil)
	defer server.Close()

	classifier := NewClassifierService(server.URL, "llama3:8b", 5*time.Second)
	verdict, err := classifier.Classify(context.Background(), validResumeText(), ModeBinary)

	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, 0, verdict.Score)
	assert.Equal(t, "Random essay.", verdict.Reason)
}

func TestClassifyMissingRequiredKeys(t *testing.T) {
	cases := []struct {
		name  string
		mode  EvalMode
		inner string
		key   string
	}{
		{"missing valid", ModeBinary, `{"confidence": 0.9, "reason": "x"}`, "valid"},
		{"missing reason", ModeBinary, `{"valid": true, "confidence": 0.9}`, "reason"},
		{"missing confidence", ModeBinary, `{"valid": true, "reason": "x"}`, "confidence"},
		{"missing score in scored mode", ModeScored, `{"valid": true, "confidence": 0.9, "reason": "x"}`, "score"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := fakeOllama(t, http.StatusOK, tc.inner, nil)
			defer server.Close()

			classifier := NewClassifierService(server.URL, "qwen2:7b", 5*time.Second)
			_, err := classifier.Classify(context.Background(), validResumeText(), tc.mode)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrClassifier)
			assert.Contains(t, err.Error(), fmt.Sprintf("%q", tc.key))
		})
	}
}

func TestClassifyBinaryModeDoesNotRequireScore(t *testing.T) {
	inner := `{"valid": true, "confidence": 0.8, "reason": "Looks fine."}`
	server := fakeOllama(t, http.StatusOK, inner, nil)
	defer server.Close()

	classifier := NewClassifierService(server.URL, "llama3:8b", 5*time.Second)
	_, err := classifier.Classify(context.Background(), validResumeText(), ModeBinary)
	require.NoError(t, err)
}

func TestClassifyModelOutputNotJSON(t *testing.T) {
	server := fakeOllama(t, http.StatusOK, "Sure! Here is my analysis...", nil)
	defer server.Close()

	classifier := NewClassifierService(server.URL, "qwen2:7b", 5*time.Second)
	_, err := classifier.Classify(context.Background(), validResumeText(), ModeScored)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClassifier)
}

func TestClassifyEndpointError(t *testing.T) {
	server := fakeOllama(t, http.StatusInternalServerError, "", nil)
	defer server.Close()

	classifier := NewClassifierService(server.URL, "qwen2:7b", 5*time.Second)
	_, err := classifier.Classify(context.Background(), validResumeText(), ModeScored)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClassifier)
	assert.Contains(t, err.Error(), "500")
}

func TestClassifyEndpointUnreachable(t *testing.T) {
	classifier := NewClassifierService("http://127.0.0.1:1", "qwen2:7b", time.Second)
	_, err := classifier.Classify(context.Background(), validResumeText(), ModeScored)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClassifier)
}

func TestClassifyTruncatesLongInput(t *testing.T) {
	var lastPrompt string
	inner := `{"valid": true, "score": 5, "confidence": 0.7, "reason": "ok"}`
	server := fakeOllama(t, http.StatusOK, inner, &lastPrompt)
	defer server.Close()

	longText := strings.Repeat("resume content ", 1000)
	require.Greater(t, len(longText), promptInputLimit)

	classifier := NewClassifierService(server.URL, "qwen2:7b", 5*time.Second)
	_, err := classifier.Classify(context.Background(), longText, ModeScored)
	require.NoError(t, err)

	assert.Contains(t, lastPrompt, longText[:promptInputLimit])
	assert.NotContains(t, lastPrompt, longText[:promptInputLimit+1])
}
