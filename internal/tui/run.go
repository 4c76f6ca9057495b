package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptr/internal/pipeline"
	"github.com/sant0-9/promptr/internal/prompt"
)

type progressMsg pipeline.Progress

type resultMsg struct {
	result *pipeline.Result
}

// startOptimize runs the optimizer off the UI goroutine. Progress and the
// final result arrive on a per-run channel that waitForEvent drains one
// message at a time.
func (a *App) startOptimize(text string) tea.Cmd {
	if a.state.running || a.state.optimizer == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tea.Msg, 8)
	opt := a.state.optimizer

	a.state.running = true
	a.state.cancelled = false
	a.state.cancel = cancel
	a.state.events = events
	a.state.progress = nil
	a.state.lastInput = text
	a.view = viewProcessing

	go func() {
		defer close(events)
		defer cancel()
		opt.SetProgressCallback(func(p pipeline.Progress) {
			events <- progressMsg(p)
		})
		events <- resultMsg{result: opt.Optimize(ctx, pipeline.Request{Text: text})}
	}()

	return tea.Batch(a.state.spinner.Tick, waitForEvent(events))
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// cancelRun stops an in-flight optimize. The run still delivers its
// result, which Update discards.
func (a *App) cancelRun() {
	if !a.state.running {
		return
	}
	a.state.cancelled = true
	if a.state.cancel != nil {
		a.state.cancel()
	}
}

func (a *App) showResult(res *pipeline.Result) {
	a.state.result = res
	a.state.selected = 0
	for i, v := range res.Set.Versions {
		if v.Label.Key == res.BestKey {
			a.state.selected = i
			break
		}
	}
	a.view = viewResult
	a.resizeViewport()
	a.state.viewport.GotoTop()
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	res := a.state.result
	n := res.Set.Len()

	switch {
	case n > 0 && key.Matches(msg, keys.Left):
		a.state.selected = (a.state.selected - 1 + n) % n
		a.refreshVersion()
	case n > 0 && key.Matches(msg, keys.Right):
		a.state.selected = (a.state.selected + 1) % n
		a.refreshVersion()
	case key.Matches(msg, keys.Best):
		for i, v := range res.Set.Versions {
			if v.Label.Key == res.BestKey {
				a.state.selected = i
			}
		}
		a.refreshVersion()
	case key.Matches(msg, keys.New), key.Matches(msg, keys.Quit):
		a.state.result = nil
		a.view = viewWelcome
		a.state.input.Focus()
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
	case msg.String() == "s":
		a.openSettings()
	default:
		return nil, false
	}
	return nil, true
}

func (a *App) refreshVersion() {
	a.state.viewport.SetContent(a.versionBody())
	a.state.viewport.GotoTop()
}

func (a *App) selectedVersion() (prompt.GeneratedVersion, bool) {
	res := a.state.result
	if res == nil || a.state.selected < 0 || a.state.selected >= res.Set.Len() {
		return prompt.GeneratedVersion{}, false
	}
	return res.Set.Versions[a.state.selected], true
}

// versionBody is the wrapped text of the selected version
func (a *App) versionBody() string {
	v, ok := a.selectedVersion()
	if !ok {
		return ""
	}
	return lipgloss.NewStyle().Width(a.state.viewport.Width).Render(v.Text)
}
