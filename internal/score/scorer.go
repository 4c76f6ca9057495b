package score

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prompt"
	"github.com/sant0-9/promptr/internal/prompts"
)

const (
	component      = "score"
	maxSuggestions = 3
)

// Result is the score of one candidate prompt
type Result struct {
	Score       int           `json:"score"`
	Suggestions []string      `json:"suggestions"`
	Source      prompt.Source `json:"source"`
}

// Scorer rates prompts, through the LLM when one is configured
type Scorer struct {
	provider llm.Provider
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Scorer)

func WithTimeout(d time.Duration) Option {
	return func(s *Scorer) { s.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scorer) { s.metrics = m }
}

// New builds a scorer. With a nil provider only the heuristic is used.
func New(p llm.Provider, opts ...Option) *Scorer {
	s := &Scorer{
		provider: p,
		timeout:  30 * time.Second,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type scoreJSON struct {
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// Score never fails. Any LLM problem yields the heuristic score with no
// suggestions.
func (s *Scorer) Score(ctx context.Context, text string, confidence float64) Result {
	heuristic := Result{
		Score:       Heuristic(text, confidence),
		Suggestions: []string{},
		Source:      prompt.SourceHeuristic,
	}
	if s == nil || s.provider == nil {
		return heuristic
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	r, err := s.scoreLLM(callCtx, text)
	if err != nil {
		reason := llm.FailureReason(err)
		s.logger.Warn("scoring fell back to heuristic",
			"component", component,
			"reason", reason,
			"error", err,
		)
		s.metrics.Fallback(component, reason)
		return heuristic
	}
	return r
}

func (s *Scorer) scoreLLM(ctx context.Context, text string) (Result, error) {
	instruction, err := prompts.Score(text)
	if err != nil {
		return Result{}, err
	}

	out, err := llm.Generate(ctx, s.provider, prompts.ScoreSystem, instruction, 0.2, 400)
	if err != nil {
		return Result{}, err
	}

	var wire scoreJSON
	if err := llm.DecodeJSON(out, &wire); err != nil {
		return Result{}, err
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, sug := range wire.Suggestions {
		if sug = strings.TrimSpace(sug); sug != "" && len(suggestions) < maxSuggestions {
			suggestions = append(suggestions, sug)
		}
	}

	return Result{
		Score:       prompt.ClampScore(int(math.Round(wire.Score))),
		Suggestions: suggestions,
		Source:      prompt.SourceLLM,
	}, nil
}
