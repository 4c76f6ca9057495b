package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	errMsg := "Unknown error"
	if a.state.setupError != nil {
		errMsg = a.state.setupError.Error()
	} else if a.state.providerError != nil {
		errMsg = a.state.providerError.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, max(20, a.width-4))).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(a.center(errBox))
	b.WriteString("\n\n")

	if suggestions := suggestFixes(errMsg); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, max(20, a.width-4))).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(a.center(suggBox))
		b.WriteString("\n\n")
	}

	b.WriteString(a.center(styleStatusBar.Render("[r] Retry  [s] Settings  [Esc] Back")))

	return a.centerVertically(b.String())
}

// suggestFixes maps common failure text to next steps
func suggestFixes(errMsg string) []string {
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "api key"), strings.Contains(errLower, "401"), strings.Contains(errLower, "unauthorized"):
		return []string{
			"Check your API key in ~/.config/promptr/config.yaml",
			"Or press [s] to open settings",
		}
	case strings.Contains(errLower, "ollama"):
		return []string{
			"Make sure Ollama is running: ollama serve",
			"Or switch to a cloud provider in settings",
		}
	case strings.Contains(errLower, "connect"), strings.Contains(errLower, "timeout"), strings.Contains(errLower, "deadline"):
		return []string{
			"Check your internet connection",
			"Local templates still work while offline",
		}
	case strings.Contains(errLower, "rate limit"), strings.Contains(errLower, "429"):
		return []string{
			"You've hit the API rate limit",
			"Lower rate_limit in the config or wait a moment",
		}
	case strings.Contains(errLower, "permission"), strings.Contains(errLower, "read-only"):
		return []string{"Check that ~/.config/promptr is writable"}
	}
	return nil
}
