package score

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/sant0-9/promptr/internal/llm/llmtest"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prompt"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestScoreLLM(t *testing.T) {
	fake := llmtest.Text("```json\n{\"score\": 91.6, \"suggestions\": [\"Add an example\", \" \", \"Set a length\", \"Name the audience\", \"extra\"]}\n```")
	got := New(fake, WithLogger(quiet)).Score(context.Background(), "Explain recursion", 0.5)

	assert.Equal(t, Result{
		Score:       92,
		Suggestions: []string{"Add an example", "Set a length", "Name the audience"},
		Source:      prompt.SourceLLM,
	}, got)
}

func TestScoreLLMClamps(t *testing.T) {
	got := New(llmtest.Text(`{"score": 250}`), WithLogger(quiet)).Score(context.Background(), "x", 0)
	assert.Equal(t, 100, got.Score)
	assert.Empty(t, got.Suggestions)
}

func TestScoreFallsBackToHeuristic(t *testing.T) {
	tests := []struct {
		name   string
		fake   *llmtest.Fake
		reason string
	}{
		{"provider error", llmtest.Failing(errors.New("down")), "provider"},
		{"garbage", llmtest.Text("ten out of ten"), "parse"},
		{"wrong type", llmtest.Text(`{"score": "great"}`), "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())
			got := New(tt.fake, WithLogger(quiet), WithMetrics(m)).Score(context.Background(), "Explain recursion", 0.4)

			assert.Equal(t, Heuristic("Explain recursion", 0.4), got.Score)
			assert.Equal(t, prompt.SourceHeuristic, got.Source)
			assert.NotNil(t, got.Suggestions)
			assert.Empty(t, got.Suggestions)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks().WithLabelValues(component, tt.reason)))
		})
	}
}

func TestScoreWithoutProvider(t *testing.T) {
	got := New(nil).Score(context.Background(), "", 0)
	assert.Equal(t, Result{Score: 75, Suggestions: []string{}, Source: prompt.SourceHeuristic}, got)
}
