package llm

import (
	"context"
	"fmt"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/metrics"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	apiKey := cfg.Key()
	switch cfg.Provider {
	case "ollama":
		host := "http://localhost:11434"
		if cfg.BaseURL != "" {
			host = cfg.BaseURL
		}
		return NewOllamaProvider(host, cfg.Model), nil

	case "groq":
		if apiKey == "" {
			return nil, fmt.Errorf("groq requires an API key")
		}
		return NewGroqProvider(apiKey, cfg.Model), nil

	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai requires an API key")
		}
		return NewOpenAIProvider(apiKey, cfg.Model), nil

	case "anthropic":
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		return NewAnthropicProvider(apiKey, cfg.Model), nil

	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		return NewGeminiProvider(context.Background(), apiKey, cfg.Model)

	case "openrouter":
		if apiKey == "" {
			return nil, fmt.Errorf("openrouter requires an API key")
		}
		return NewOpenRouterProvider(apiKey, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(cfg.BaseURL, apiKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Options controls the decorators Wrap applies
type Options struct {
	RateLimit     float64
	RetryAttempts int
	Metrics       *metrics.Metrics
}

// Wrap applies metrics, then rate limiting, then retry. Each retried
// attempt is metered and waits for a token.
func Wrap(p Provider, opts Options) Provider {
	p = WithMetrics(p, opts.Metrics)
	p = WithRateLimit(p, opts.RateLimit)
	if opts.RetryAttempts > 0 {
		policy := DefaultRetryPolicy()
		policy.MaxAttempts = opts.RetryAttempts + 1
		p = WithRetry(p, policy)
	}
	return p
}
