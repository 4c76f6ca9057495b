package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/prompt"
)

func (a *App) openSettings() {
	a.view = viewSettings
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.settingsMode {
	case "provider":
		providers := setupProviders()
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			a.state.settingsSelected = max(0, a.state.settingsSelected-1)
		case key.Matches(msg, keys.Down):
			a.state.settingsSelected = min(len(providers)-1, a.state.settingsSelected+1)
		case key.Matches(msg, keys.Enter):
			p := providers[a.state.settingsSelected]
			a.state.config.Provider = p.ID
			a.state.config.Model = p.DefaultModel
			if p.NeedsAPIKey {
				a.state.config.APIKey = ""
				a.state.settingsMode = "apikey"
				a.state.apiKeyInput.Focus()
				return nil, true
			}
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, true

	case "model":
		info := config.GetProvider(a.state.config.Provider)
		if info == nil || len(info.Models) == 0 {
			a.state.settingsMode = ""
			return nil, true
		}
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			a.state.settingsSelected = max(0, a.state.settingsSelected-1)
		case key.Matches(msg, keys.Down):
			a.state.settingsSelected = min(len(info.Models)-1, a.state.settingsSelected+1)
		case key.Matches(msg, keys.Enter):
			a.state.config.Model = info.Models[a.state.settingsSelected]
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, true

	case "apikey":
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.settingsMode = ""
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.back()
	case msg.String() == "p":
		a.state.settingsMode = "provider"
		a.state.settingsSelected = 0
	case msg.String() == "m":
		a.state.settingsMode = "model"
		a.state.settingsSelected = 0
		if info := config.GetProvider(a.state.config.Provider); info != nil {
			if i := slices.Index(info.Models, a.state.config.Model); i >= 0 {
				a.state.settingsSelected = i
			}
		}
	case msg.String() == "k":
		a.state.settingsMode = "apikey"
		a.state.apiKeyInput.Focus()
	case msg.String() == "r":
		a.state.prefs.Reset()
	}
	return nil, true
}

// applySettings saves the config and reconnects with the new provider
func (a *App) applySettings() tea.Cmd {
	a.state.providerReady = false
	cfg := a.state.config
	save := a.save
	return tea.Sequence(
		func() tea.Msg {
			if err := save(cfg); err != nil {
				a.logger.Warn("failed to save config", "error", err)
			}
			return nil
		},
		a.connect(),
	)
}

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	b.WriteString(a.center(styleTitle.Render("Settings")))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}

	configLines := []string{
		fmt.Sprintf("  Provider:    %s", providerName),
		fmt.Sprintf("  Model:       %s", cfg.Model),
		fmt.Sprintf("  API Key:     %s", maskKey(cfg.Key())),
		fmt.Sprintf("  Timeout:     %s", cfg.Timeout),
		fmt.Sprintf("  Temperature: %.1f", cfg.Temperature),
		fmt.Sprintf("  LLM scoring: %t", cfg.ScoreWithLLM),
	}
	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(configLines, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleBox.Copy().Width(50).Render(a.usageLines())))
	b.WriteString("\n\n")

	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [r] Reset usage stats",
	}
	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(actions, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}

// usageLines summarises the session's preference counters
func (a *App) usageLines() string {
	snap := a.state.prefs.Snapshot()
	if snap.Total == 0 {
		return styleSubtitle.Render("  No prompts optimized yet")
	}

	lines := []string{fmt.Sprintf("  Optimized: %d", snap.Total)}
	for _, d := range prompt.Domains {
		if n := snap.Domains[d]; n > 0 {
			lines = append(lines, fmt.Sprintf("    %-10s %d", d, n))
		}
	}
	if def, ok := a.state.prefs.SmartDefaults(); ok {
		lines = append(lines, fmt.Sprintf("  Usual: %s / %s / %s", def.Domain, def.TaskType.Label(), def.Version))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderList(title string, items []string, current string) string {
	var b strings.Builder

	b.WriteString(a.center(styleTitle.Render(title)))
	b.WriteString("\n\n")

	var lines []string
	for i, item := range items {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		line := cursor + item
		if item == current {
			line += " (current)"
		}
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")
	b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var names []string
	current := ""
	for _, p := range setupProviders() {
		names = append(names, p.Name)
		if p.ID == a.state.config.Provider {
			current = p.Name
		}
	}
	return a.renderList("Select Provider", names, current)
}

func (a *App) renderSettingsModel() string {
	info := config.GetProvider(a.state.config.Provider)
	if info == nil {
		return a.centerVertically(a.center(styleSubtitle.Render("No provider selected")))
	}
	return a.renderList(fmt.Sprintf("Select %s Model", info.Name), info.Models, a.state.config.Model)
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	b.WriteString(a.center(styleTitle.Render("Update API Key")))
	b.WriteString("\n\n")
	b.WriteString(a.center(styleSubtitle.Render("Enter your new API key")))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(a.center(inputBox))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Enter] Save  [Esc] Cancel")))

	return a.centerVertically(b.String())
}
