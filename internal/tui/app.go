package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/pipeline"
)

type view int

const (
	viewWelcome view = iota
	viewSetup
	viewProcessing
	viewResult
	viewSettings
	viewHelp
	viewError
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	logger   *slog.Logger
	save     func(*config.Config) error
	offline  bool
	quitting bool
}

// Options configures the TUI. A nil Config starts the setup wizard.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Save persists the config after setup or a settings change.
	// Defaults to Config.Save.
	Save func(*config.Config) error
	// Offline never contacts the provider
	Offline bool
}

func NewApp(opts Options) *App {
	s := newState()

	if opts.Config == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = opts.Config
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	save := opts.Save
	if save == nil {
		save = (*config.Config).Save
	}

	return &App{
		view:    viewWelcome,
		state:   s,
		logger:  logger,
		save:    save,
		offline: opts.Offline,
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.connect(),
	)
}

// connect pings the configured provider and builds the optimizer. A
// provider that cannot be reached still yields an offline optimizer.
func (a *App) connect() tea.Cmd {
	cfg := *a.state.config
	store := a.state.prefs
	logger := a.logger
	offline := a.offline
	return func() tea.Msg {
		opts := pipeline.BuildOptions{Logger: logger, Prefs: store, Offline: offline}

		var err error
		if offline {
			err = errOffline
		} else if err = ping(&cfg); err != nil {
			logger.Warn("provider unavailable, running offline", "provider", cfg.Provider, "error", err)
			opts.Offline = true
		}

		opt, buildErr := pipeline.FromConfig(&cfg, opts)
		if buildErr != nil {
			opts.Offline = true
			opt, _ = pipeline.FromConfig(&cfg, opts)
			err = buildErr
		}

		if err != nil {
			return providerErrorMsg{err: err, optimizer: opt}
		}
		return providerReadyMsg{optimizer: opt}
	}
}

func ping(cfg *config.Config) error {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return provider.Ping(ctx)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeViewport()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupError = nil
		a.view = viewWelcome
		return a, a.connect()

	case setupErrorMsg:
		a.state.setupError = msg.error
		a.view = viewError
		return a, nil

	case providerReadyMsg:
		a.state.optimizer = msg.optimizer
		a.state.providerReady = true
		a.state.providerError = nil
		a.state.offline = false
		a.state.input.Focus()
		return a, textinput.Blink

	case providerErrorMsg:
		a.state.optimizer = msg.optimizer
		a.state.providerReady = true
		a.state.providerError = msg.err
		a.state.offline = true
		a.state.input.Focus()
		return a, textinput.Blink

	case progressMsg:
		p := pipeline.Progress(msg)
		a.state.progress = &p
		return a, waitForEvent(a.state.events)

	case resultMsg:
		a.state.running = false
		a.state.cancel = nil
		if a.state.cancelled {
			a.state.cancelled = false
			return a, nil
		}
		a.showResult(msg.result)
		return a, nil

	case spinner.TickMsg:
		if a.view != viewProcessing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Update text inputs based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == 1,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewWelcome:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewResult:
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey returns handled=false when the key should fall through to
// the focused input or viewport.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		a.cancelRun()
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewProcessing:
		if key.Matches(msg, keys.Quit) {
			a.cancelRun()
			a.view = viewWelcome
			a.state.input.SetValue(a.state.lastInput)
			a.state.input.Focus()
		}
		return nil, true
	case viewResult:
		return a.handleResultKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Quit) {
			a.back()
		}
		return nil, true
	case viewError:
		return a.handleErrorKey(msg)
	}

	// Welcome
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Enter):
		if a.state.providerReady {
			return a.handleInput(), true
		}
		return nil, true
	}
	return nil, false
}

func (a *App) back() {
	if a.state.result != nil {
		a.view = viewResult
		return
	}
	a.view = viewWelcome
	a.state.input.Focus()
}

func (a *App) handleInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" {
		return nil
	}

	// Handle slash commands
	if strings.HasPrefix(input, "/") {
		cmd := strings.ToLower(input)
		switch {
		case cmd == "/help" || cmd == "/h":
			a.view = viewHelp
			a.state.input.Reset()
			return nil
		case cmd == "/settings" || cmd == "/s":
			a.openSettings()
			a.state.input.Reset()
			return nil
		case cmd == "/quit" || cmd == "/q":
			a.quitting = true
			return tea.Quit
		}
	}

	// A cancelled run is still unwinding
	if a.state.running {
		return nil
	}
	a.state.input.Reset()
	return a.startOptimize(input)
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	providers := setupProviders()

	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Quit):
			a.quitting = true
			return tea.Quit, true
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.finishSetup(), true
		}
		return nil, true

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			return a.finishSetup(), true
		}
	}

	return nil, false
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "r":
		if a.state.setupError != nil {
			return a.finishSetup(), true
		}
		a.view = viewWelcome
		return a.connect(), true
	case "s":
		a.openSettings()
		return nil, true
	}
	if key.Matches(msg, keys.Quit) {
		a.state.setupError = nil
		if a.state.needsSetup {
			a.view = viewSetup
			return nil, true
		}
		a.back()
	}
	return nil, true
}

// setupProviders omits custom, which needs base_url in the config file
func setupProviders() []config.ProviderInfo {
	var out []config.ProviderInfo
	for _, p := range config.Providers {
		if p.ID != "custom" {
			out = append(out, p)
		}
	}
	return out
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	save := a.save
	return func() tea.Msg {
		if err := cfg.Validate(); err != nil {
			return setupErrorMsg{err}
		}
		if err := save(cfg); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

var errOffline = errors.New("started with --offline")

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }

type providerReadyMsg struct {
	optimizer *pipeline.Optimizer
}

type providerErrorMsg struct {
	err       error
	optimizer *pipeline.Optimizer
}

func (a *App) resizeViewport() {
	a.state.viewport.Width = min(80, max(20, a.width-4))
	a.state.viewport.Height = max(5, a.height-18)
	if a.state.result != nil {
		a.state.viewport.SetContent(a.versionBody())
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewWelcome:
		return a.renderWelcome()
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderWelcome()
	}
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := max(0, (a.height-lines)/2)
	return strings.Repeat("\n", padding) + content
}

func (a *App) center(s string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}
