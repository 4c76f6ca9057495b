package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/pipeline"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// offlineApp is past setup, with a provider that failed to connect
func offlineApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(Options{Config: config.DefaultConfig(), Logger: quiet})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app.Update(providerErrorMsg{
		err:       errors.New("cannot connect to Ollama"),
		optimizer: pipeline.New(pipeline.Config{Logger: quiet, Prefs: app.state.prefs}),
	})
	return app
}

// drain feeds every event of the current run back into Update
func drain(app *App) {
	for msg := range app.state.events {
		app.Update(msg)
	}
}

func TestSetupWithoutAPIKey(t *testing.T) {
	var saved *config.Config
	app := NewApp(Options{Logger: quiet, Save: func(c *config.Config) error {
		saved = c
		return nil
	}})
	app.Init()
	require.Equal(t, viewSetup, app.view)

	_, cmd := app.Update(enter())
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, setupCompleteMsg{}, msg)
	require.NotNil(t, saved)
	assert.Equal(t, "ollama", saved.Provider)

	app.Update(msg)
	assert.Equal(t, viewWelcome, app.view)
	assert.False(t, app.state.needsSetup)
}

func TestSetupWithAPIKey(t *testing.T) {
	var saved *config.Config
	app := NewApp(Options{Logger: quiet, Save: func(c *config.Config) error {
		saved = c
		return nil
	}})
	app.Init()

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(enter())
	require.Equal(t, 1, app.state.setupStep)
	assert.Equal(t, "groq", app.state.config.Provider)

	app.Update(typed("gsk_test"))
	_, cmd := app.Update(enter())
	require.NotNil(t, cmd)
	assert.IsType(t, setupCompleteMsg{}, cmd())
	require.NotNil(t, saved)
	assert.Equal(t, "gsk_test", saved.APIKey)
}

func TestSetupSaveError(t *testing.T) {
	app := NewApp(Options{Logger: quiet, Save: func(*config.Config) error {
		return errors.New("permission denied")
	}})
	app.Init()

	_, cmd := app.Update(enter())
	app.Update(cmd())
	assert.Equal(t, viewError, app.view)
	assert.Contains(t, app.View(), "permission denied")
}

func TestProviderErrorRunsOffline(t *testing.T) {
	app := offlineApp(t)
	assert.True(t, app.state.providerReady)
	assert.True(t, app.state.offline)
	assert.Contains(t, app.View(), "Offline mode")
}

func TestOptimizeFlow(t *testing.T) {
	app := offlineApp(t)
	app.state.input.SetValue("Write a Python function to sort a list")

	_, cmd := app.Update(enter())
	require.NotNil(t, cmd)
	assert.Equal(t, viewProcessing, app.view)
	assert.Contains(t, app.View(), "Optimizing")

	drain(app)

	require.Equal(t, viewResult, app.view)
	res := app.state.result
	require.NotNil(t, res)
	assert.False(t, app.state.running)

	best, ok := app.selectedVersion()
	require.True(t, ok)
	assert.Equal(t, res.BestKey, best.Label.Key)
	assert.Contains(t, app.View(), "★")

	n := res.Set.Len()
	start := app.state.selected
	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, (start+1)%n, app.state.selected)
	app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, (start-1+n)%n, app.state.selected)

	app.Update(typed("b"))
	assert.Equal(t, start, app.state.selected)

	assert.Equal(t, 1, app.state.prefs.Snapshot().Total)

	app.Update(typed("n"))
	assert.Equal(t, viewWelcome, app.view)
	assert.Nil(t, app.state.result)
}

func TestCancelDiscardsResult(t *testing.T) {
	app := offlineApp(t)
	app.state.input.SetValue("Explain recursion to a beginner")
	app.Update(enter())
	require.True(t, app.state.running)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewWelcome, app.view)
	assert.Equal(t, "Explain recursion to a beginner", app.state.input.Value())

	drain(app)
	assert.False(t, app.state.running)
	assert.Nil(t, app.state.result)
	assert.Equal(t, viewWelcome, app.view)
}

func TestSlashCommands(t *testing.T) {
	tests := []struct {
		input string
		want  view
	}{
		{"/help", viewHelp},
		{"/h", viewHelp},
		{"/settings", viewSettings},
		{"/s", viewSettings},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			app := offlineApp(t)
			app.state.input.SetValue(tt.input)
			app.Update(enter())
			assert.Equal(t, tt.want, app.view)
			assert.NotEmpty(t, app.View())
		})
	}
}

func TestSettingsResetUsage(t *testing.T) {
	app := offlineApp(t)
	app.state.prefs.Track("coding", "developer", "write_code", "production")

	app.openSettings()
	assert.Contains(t, app.View(), "Optimized: 1")

	app.Update(typed("r"))
	assert.Equal(t, 0, app.state.prefs.Snapshot().Total)
	assert.Contains(t, app.View(), "No prompts optimized yet")
}

func TestSuggestFixes(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"openai: 401 unauthorized", "API key"},
		{"cannot connect to Ollama at http://localhost:11434", "ollama serve"},
		{"context deadline exceeded", "internet connection"},
		{"429 too many requests", "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			got := suggestFixes(tt.err)
			require.NotEmpty(t, got)
			assert.Contains(t, got[0], tt.want)
		})
	}

	assert.Empty(t, suggestFixes("something odd"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hello w...", truncate("hello world!", 10))
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestContextLimit(t *testing.T) {
	assert.Equal(t, 200000, contextLimit("claude-3-5-sonnet-20241022"))
	assert.Equal(t, 128000, contextLimit("gpt-4o-mini"))
	assert.Equal(t, 128000, contextLimit("llama3.1:8b"))
	assert.Equal(t, 1000000, contextLimit("gemini-2.0-flash"))
	assert.Equal(t, 8000, contextLimit("unknown"))
	assert.Contains(t, tokenUsage(80, "unknown"), "~80 tokens (1.0%")
}
