package classify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/llm/llmtest"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prompt"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// blockingProvider waits for the context to end
type blockingProvider struct{}

func (blockingProvider) Name() string { return "blocking" }

func (blockingProvider) Ping(ctx context.Context) error { return nil }

func (blockingProvider) Complete(ctx context.Context, _ *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestClassifierUsesLLM(t *testing.T) {
	c := New(llmtest.Text(classificationBody), WithLogger(quiet))
	got := c.Classify(context.Background(), "my recursive function crashes")
	assert.Equal(t, prompt.SourceLLM, got.Source)
	assert.Equal(t, prompt.TaskDebug, got.TaskType)
}

func TestClassifierFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		reason   string
	}{
		{"provider error", llmtest.Failing(errors.New("dial tcp: refused")), "provider"},
		{"not json", llmtest.Text("Sure, it's about coding!"), "parse"},
		{"empty", llmtest.Text("  "), "empty_response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())
			c := New(tt.provider, WithLogger(quiet), WithMetrics(m))

			got := c.Classify(context.Background(), "Help me write a Python sorting function")
			assert.Equal(t, ClassifyFallback("Help me write a Python sorting function"), got)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks().WithLabelValues(component, tt.reason)))
		})
	}
}

func TestClassifierTimeoutFallsBack(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c := New(blockingProvider{}, WithTimeout(20*time.Millisecond), WithLogger(quiet), WithMetrics(m))

	got := c.Classify(context.Background(), "Explain machine learning to me")
	assert.Equal(t, prompt.SourceKeyword, got.Source)
	assert.Equal(t, prompt.DomainMLDS, got.Domain)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks().WithLabelValues(component, "timeout")))
}

func TestClassifierNilProvider(t *testing.T) {
	got := New(nil, WithLogger(quiet)).Classify(context.Background(), "Explain machine learning to me")
	assert.Equal(t, prompt.SourceKeyword, got.Source)
}

func TestClassifierCachesLLMResults(t *testing.T) {
	fake := llmtest.Text(classificationBody)
	c := New(fake, WithLogger(quiet), WithCacheSize(8))

	first := c.Classify(context.Background(), "same text")
	second := c.Classify(context.Background(), "same text")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.CallCount())

	second.KeyTopics[0] = "mutated"
	third := c.Classify(context.Background(), "same text")
	assert.Equal(t, "python", third.KeyTopics[0])
}

func TestClassifierDoesNotCacheFallbacks(t *testing.T) {
	fake := llmtest.New(
		llmtest.Reply{Err: errors.New("down")},
		llmtest.Reply{Content: classificationBody},
	)
	c := New(fake, WithLogger(quiet))

	assert.Equal(t, prompt.SourceKeyword, c.Classify(context.Background(), "debug this").Source)
	assert.Equal(t, prompt.SourceLLM, c.Classify(context.Background(), "debug this").Source)
	require.Equal(t, 2, fake.CallCount())
}

func TestClassifierEmptyInputSkipsProvider(t *testing.T) {
	fake := llmtest.Text(classificationBody)
	got := New(fake, WithLogger(quiet)).Classify(context.Background(), "   ")
	assert.Equal(t, prompt.DomainGeneral, got.Domain)
	assert.Zero(t, fake.CallCount())
}
