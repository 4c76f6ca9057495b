package llm

import (
	"context"
	"math"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/sant0-9/promptr/internal/metrics"
)

// RetryPolicy configures WithRetry
type RetryPolicy struct {
	// MaxAttempts includes the first call
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// JitterFactor of 0.2 means ±20%
	JitterFactor float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.2,
	}
}

type retryProvider struct {
	Provider
	policy RetryPolicy
}

// WithRetry retries transient errors with exponential backoff. Fatal
// errors and context cancellation return immediately.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.MaxAttempts <= 1 {
		return p
	}
	return &retryProvider{Provider: p, policy: policy}
}

func (r *retryProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := r.Provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == r.policy.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff(r.policy, attempt)):
		}
	}
	return nil, lastErr
}

func backoff(policy RetryPolicy, attempt int) time.Duration {
	delay := float64(policy.InitialDelay) * math.Pow(policy.Multiplier, float64(attempt-1))
	if policy.MaxDelay > 0 && delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}
	if policy.JitterFactor > 0 {
		jitter := delay * policy.JitterFactor
		delay = delay - jitter + rand.Float64()*2*jitter
	}
	return time.Duration(delay)
}

type rateLimitedProvider struct {
	Provider
	limiter *rate.Limiter
}

// WithRateLimit caps requests per second. A non-positive rps disables it.
func WithRateLimit(p Provider, rps float64) Provider {
	if rps <= 0 {
		return p
	}
	burst := int(math.Ceil(rps))
	return &rateLimitedProvider{Provider: p, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (r *rateLimitedProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.Provider.Complete(ctx, req)
}

type meteredProvider struct {
	Provider
	m *metrics.Metrics
}

// WithMetrics records request outcome and latency for every Complete call
func WithMetrics(p Provider, m *metrics.Metrics) Provider {
	if m == nil {
		return p
	}
	return &meteredProvider{Provider: p, m: m}
}

func (mp *meteredProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := mp.Provider.Complete(ctx, req)
	mp.m.LLMRequest(mp.Name(), outcome(err), time.Since(start))
	return resp, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsTransient(err):
		return "transient"
	case IsFatal(err):
		return "fatal"
	default:
		return "error"
	}
}
