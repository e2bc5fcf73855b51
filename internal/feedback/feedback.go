// Package feedback produces AI-written weekly feedback from tracker data.
// Generated feedback is cached per date in a JSON file so a date is analyzed
// at most once.
package feedback

import (
	"context"
	"errors"

	"daytrack/internal/reports"
)

// ErrFeedbackUnavailable is returned when the LLM cannot be reached or gives
// an unusable answer. Callers treat it as a notice, not a failure.
var ErrFeedbackUnavailable = errors.New("feedback: unavailable")

// Entry is a cached feedback record. The JSON keys are the on-disk cache
// contract and must not change.
type Entry struct {
	AIAnalysis      string               `json:"aiAnalysis"`
	Recommendations []string             `json:"Recommendations"`
	CorrelationData reports.Correlations `json:"correlationData"`
}

// LLMClient is the port to a language model. GeminiClient implements it.
type LLMClient interface {
	GenerateFeedback(ctx context.Context, prompt string) (string, error)
}
