package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptr/internal/config"
)

func (a *App) renderSetup() string {
	switch a.state.setupStep {
	case 0:
		return a.renderProviderSelection()
	case 1:
		return a.renderAPIKeyEntry()
	default:
		return ""
	}
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	b.WriteString(a.center(styleLogo.Render(logo)))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("Welcome! Choose the LLM that rewrites your prompts:")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	var providerLines []string
	for i, p := range setupProviders() {
		if i == a.state.selectedProvider {
			providerLines = append(providerLines, lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Render(fmt.Sprintf("> [x] %-12s %s", p.Name, p.Description)))
			continue
		}
		providerLines = append(providerLines, lipgloss.NewStyle().
			Foreground(colorMuted).
			Render(fmt.Sprintf("  [ ] %-12s %s", p.Name, p.Description)))
	}

	providerBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(providerLines, "\n"))
	b.WriteString(a.center(providerBox))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Every step has a local fallback, so promptr works offline too.")
	b.WriteString(a.center(hint))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Quit")))

	return a.centerVertically(b.String())
}

func (a *App) renderAPIKeyEntry() string {
	var b strings.Builder

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		return ""
	}

	b.WriteString(a.center(styleLogo.Render(logo)))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(fmt.Sprintf("Enter your %s API key:", provider.Name))
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	if provider.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", provider.SignupURL))
		b.WriteString(a.center(link))
		b.WriteString("\n\n")
	}

	inputBox := styleBox.Copy().
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(a.center(inputBox))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Enter] Continue  [Esc] Back")))

	return a.centerVertically(b.String())
}
