package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"daytrack/internal/model"
	"daytrack/internal/reports"
)

// Generator produces weekly feedback for a date, consulting the cache first.
type Generator struct {
	cache   *Cache
	llm     LLMClient
	reports *reports.Generator
	logger  zerolog.Logger
}

// NewGenerator wires a feedback generator.
func NewGenerator(cache *Cache, llm LLMClient, rep *reports.Generator, logger zerolog.Logger) *Generator {
	return &Generator{
		cache:   cache,
		llm:     llm,
		reports: rep,
		logger:  logger.With().Str("component", "feedback").Logger(),
	}
}

// Generate returns feedback for the week ending at day. A cached entry for
// the date is returned without calling the model; otherwise the model is
// asked once and the result stored. LLM failures surface as
// ErrFeedbackUnavailable.
func (g *Generator) Generate(ctx context.Context, day time.Time) (Entry, error) {
	date := model.DayOf(day)

	if e, ok := g.cache.Get(date); ok {
		g.logger.Debug().Str("date", date).Msg("feedback cache hit")
		return e, nil
	}

	rep := g.reports.Weekly(day)
	prompt := buildPrompt(rep)

	raw, err := g.llm.GenerateFeedback(ctx, prompt)
	if err != nil {
		g.logger.Warn().Err(err).Str("date", date).Msg("llm call failed")
		return Entry{}, fmt.Errorf("%w: %v", ErrFeedbackUnavailable, err)
	}

	entry, err := parseResponse(raw)
	if err != nil {
		g.logger.Warn().Err(err).Str("date", date).Msg("unusable llm answer")
		return Entry{}, fmt.Errorf("%w: %v", ErrFeedbackUnavailable, err)
	}
	entry.CorrelationData = rep.Correlations

	if err := g.cache.Put(date, entry); err != nil {
		// The feedback itself is still good; report it and let the next
		// call retry persistence.
		g.logger.Error().Err(err).Str("date", date).Msg("cache write failed")
	}
	return entry, nil
}

// parseResponse extracts analysis and recommendations from the model output.
// Strict JSON is expected but fenced or prefixed JSON is tolerated; plain
// prose falls back to analysis-only.
func parseResponse(raw string) (Entry, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Entry{}, fmt.Errorf("empty response")
	}

	var parsed struct {
		Analysis        string   `json:"analysis"`
		Recommendations []string `json:"recommendations"`
	}
	if body, ok := extractJSONObject(text); ok {
		if err := json.Unmarshal([]byte(body), &parsed); err == nil && parsed.Analysis != "" {
			return Entry{
				AIAnalysis:      parsed.Analysis,
				Recommendations: parsed.Recommendations,
			}, nil
		}
	}

	// Model ignored the format. Keep the prose rather than dropping it.
	return Entry{AIAnalysis: text}, nil
}

func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
