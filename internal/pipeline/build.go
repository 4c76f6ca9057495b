package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/sant0-9/promptr/internal/classify"
	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prefs"
	"github.com/sant0-9/promptr/internal/score"
	"github.com/sant0-9/promptr/internal/synth"
)

// BuildOptions controls FromConfig
type BuildOptions struct {
	// Offline skips the provider entirely
	Offline bool
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Prefs   *prefs.Store
}

// FromConfig builds an optimizer whose components share one wrapped
// provider. A provider that cannot be constructed is an error unless
// Offline is set.
func FromConfig(cfg *config.Config, opts BuildOptions) (*Optimizer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var p llm.Provider
	if !opts.Offline {
		base, err := llm.NewProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("create provider: %w", err)
		}
		p = llm.Wrap(base, llm.Options{
			RateLimit:     cfg.RateLimit,
			RetryAttempts: cfg.RetryAttempts,
			Metrics:       opts.Metrics,
		})
	}

	var scorerProvider llm.Provider
	if cfg.ScoreWithLLM {
		scorerProvider = p
	}

	return New(Config{
		Classifier: classify.New(p,
			classify.WithCacheSize(cfg.CacheSize),
			classify.WithTimeout(cfg.Timeout),
			classify.WithLogger(logger),
			classify.WithMetrics(opts.Metrics),
		),
		Synthesizer: synth.New(p,
			synth.WithTemperature(cfg.Temperature),
			synth.WithMaxTokens(cfg.MaxTokens),
			synth.WithTimeout(cfg.Timeout),
			synth.WithLogger(logger),
			synth.WithMetrics(opts.Metrics),
		),
		Scorer: score.New(scorerProvider,
			score.WithTimeout(cfg.Timeout),
			score.WithLogger(logger),
			score.WithMetrics(opts.Metrics),
		),
		Prefs:   opts.Prefs,
		Metrics: opts.Metrics,
		Logger:  logger,
	}), nil
}
