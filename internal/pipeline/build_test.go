package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prompt"
)

func TestFromConfigOffline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider = "groq" // would fail without Offline

	o, err := FromConfig(cfg, BuildOptions{Offline: true, Logger: quiet})
	require.NoError(t, err)

	res := o.Optimize(context.Background(), Request{Text: "Write a Python function to sort a list"})
	assert.Equal(t, prompt.DomainCoding, res.Classification.Domain)
	assert.Equal(t, prompt.SourceKeyword, res.Classification.Source)
	assert.NotEmpty(t, res.BestText)
}

func TestFromConfigProviderErrors(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	cfg := config.DefaultConfig()
	cfg.Provider = "groq"
	cfg.APIKey = ""

	_, err := FromConfig(cfg, BuildOptions{Logger: quiet})
	assert.Error(t, err)
}

func TestFromConfigUnreachableProviderFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	cfg := config.DefaultConfig()
	cfg.BaseURL = url
	cfg.RetryAttempts = 0
	cfg.RateLimit = 0

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	o, err := FromConfig(cfg, BuildOptions{Metrics: m, Logger: quiet})
	require.NoError(t, err)

	res := o.Optimize(context.Background(), Request{Text: "Explain how photosynthesis works"})
	assert.Equal(t, prompt.SourceKeyword, res.Classification.Source)
	for _, v := range res.Set.Versions {
		assert.Equal(t, prompt.SourceTemplate, v.Source)
		assert.NotEmpty(t, v.Text)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LLMRequests().WithLabelValues("ollama", "transient")))
}
