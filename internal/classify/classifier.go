package classify

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prompt"
)

const component = "classify"

// Classifier is the total entry point: it tries the LLM and falls back to
// keywords on any failure. Successful LLM results are cached.
type Classifier struct {
	external *External
	cache    *lru.Cache[string, prompt.ClassificationResult]
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Classifier)

// WithCacheSize sets the LRU size. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(c *Classifier) {
		if n <= 0 {
			c.cache = nil
			return
		}
		c.cache, _ = lru.New[string, prompt.ClassificationResult](n)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Classifier) { c.metrics = m }
}

// New builds a classifier. A nil provider makes every call use keywords.
func New(p llm.Provider, opts ...Option) *Classifier {
	c := &Classifier{
		timeout: 30 * time.Second,
		logger:  slog.Default(),
	}
	if p != nil {
		c.external = NewExternal(p)
	}
	WithCacheSize(128)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify never fails
func (c *Classifier) Classify(ctx context.Context, text string) prompt.ClassificationResult {
	if strings.TrimSpace(text) == "" {
		return ClassifyFallback(text)
	}
	if c.external == nil {
		c.metrics.Fallback(component, "no_provider")
		return ClassifyFallback(text)
	}

	key := prompt.Truncate(text, MaxInputRunes)
	if c.cache != nil {
		if hit, ok := c.cache.Get(key); ok {
			return clone(hit)
		}
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.external.Classify(callCtx, text)
	if err != nil {
		reason := llm.FailureReason(err)
		c.logger.Warn("classification fell back to keywords",
			"component", component,
			"reason", reason,
			"error", err,
		)
		c.metrics.Fallback(component, reason)
		return ClassifyFallback(text)
	}

	if c.cache != nil {
		c.cache.Add(key, clone(result))
	}
	return result
}

func clone(r prompt.ClassificationResult) prompt.ClassificationResult {
	r.KeyTopics = slices.Clone(r.KeyTopics)
	return r
}
