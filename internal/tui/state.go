package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/pipeline"
	"github.com/sant0-9/promptr/internal/prefs"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model
	setupError       error

	// Settings
	settingsMode     string
	settingsSelected int

	// Optimizer
	optimizer     *pipeline.Optimizer
	prefs         *prefs.Store
	providerReady bool
	providerError error
	offline       bool

	// Processing
	running   bool
	cancelled bool
	cancel    context.CancelFunc
	events    chan tea.Msg
	progress  *pipeline.Progress
	spinner   spinner.Model
	lastInput string

	// Result
	result   *pipeline.Result
	selected int
	viewport viewport.Model

	// Input
	input textinput.Model
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "Type a rough prompt to optimize..."
	input.CharLimit = 2000
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		spinner:     sp,
		viewport:    viewport.New(70, 12),
		prefs:       prefs.NewStore(),
	}
}
