// Package synth turns a classified request into one optimized prompt per
// registered version.
package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prompt"
	"github.com/sant0-9/promptr/internal/prompts"
	"github.com/sant0-9/promptr/internal/registry"
)

const component = "synth"

type Synthesizer struct {
	provider    llm.Provider
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Synthesizer)

func WithTemperature(t float64) Option {
	return func(s *Synthesizer) { s.temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(s *Synthesizer) { s.maxTokens = n }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Synthesizer) { s.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Synthesizer) { s.metrics = m }
}

// New builds a synthesizer. A nil provider always uses local templates.
func New(p llm.Provider, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		provider:    p,
		temperature: 0.7,
		maxTokens:   2048,
		timeout:     60 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize always returns a set whose keys are exactly the registered
// version keys for the domain, each with non-empty text.
func (s *Synthesizer) Synthesize(ctx context.Context, raw string, analysis prompt.PromptAnalysis, c prompt.ClassificationResult) prompt.OptimizedPromptSet {
	if s == nil || s.provider == nil {
		return Fallback(raw, analysis, c)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	texts, err := s.Generate(callCtx, raw, analysis, c)
	if err != nil {
		reason := llm.FailureReason(err)
		s.logger.Warn("synthesis fell back to templates",
			"component", component,
			"reason", reason,
			"error", err,
		)
		s.metrics.Fallback(component, reason)
		return Fallback(raw, analysis, c)
	}

	labels := registry.VersionLabels(c.Domain)
	set := prompt.OptimizedPromptSet{
		Domain:   c.Domain,
		Versions: make([]prompt.GeneratedVersion, 0, len(labels)),
		Analysis: analysis,
	}
	filled := 0
	for _, l := range labels {
		v := prompt.GeneratedVersion{Label: l, Text: texts[l.Key], Source: prompt.SourceLLM}
		if v.Text == "" {
			v.Text = FallbackText(raw, l, analysis, c)
			v.Source = prompt.SourceTemplate
			filled++
		}
		set.Versions = append(set.Versions, v)
	}
	if filled > 0 {
		s.logger.Debug("filled missing versions from templates", "component", component, "count", filled)
		s.metrics.Fallback(component, "missing_version")
	}
	return set
}

// Generate asks the provider for every version in one call. The returned
// map holds every registered key; keys the model left out map to "".
func (s *Synthesizer) Generate(ctx context.Context, raw string, analysis prompt.PromptAnalysis, c prompt.ClassificationResult) (map[prompt.VersionKey]string, error) {
	if s == nil || s.provider == nil {
		return nil, llm.ErrNoProvider
	}

	labels := registry.VersionLabels(c.Domain)
	system, err := prompts.Synthesize(prompts.SynthesizeData{
		Persona:  registry.Persona(c.Domain),
		Domain:   c.Domain,
		Role:     orDefault(c.Role, "user"),
		Task:     c.TaskType.Label(),
		Analysis: analysis,
		Labels:   labels,
	})
	if err != nil {
		return nil, err
	}

	out, err := llm.Generate(ctx, s.provider, system, raw, s.temperature, s.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	return ParseVersions(out, labels)
}

// ParseVersions decodes the model's JSON answer. Every label key is present
// in the result; unexpected keys are dropped.
func ParseVersions(raw string, labels []prompt.VersionLabel) (map[prompt.VersionKey]string, error) {
	var decoded map[string]any
	if err := llm.DecodeJSON(raw, &decoded); err != nil {
		return nil, err
	}

	texts := make(map[prompt.VersionKey]string, len(labels))
	for _, l := range labels {
		texts[l.Key] = ""
		if v, ok := decoded[string(l.Key)].(string); ok {
			texts[l.Key] = strings.TrimSpace(v)
		}
	}
	return texts, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
