package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ██████╗ ██████╗  ██████╗ ███╗   ███╗██████╗ ████████╗██████╗
 ██╔══██╗██╔══██╗██╔═══██╗████╗ ████║██╔══██╗╚══██╔══╝██╔══██╗
 ██████╔╝██████╔╝██║   ██║██╔████╔██║██████╔╝   ██║   ██████╔╝
 ██╔═══╝ ██╔══██╗██║   ██║██║╚██╔╝██║██╔═══╝    ██║   ██╔══██╗
 ██║     ██║  ██║╚██████╔╝██║ ╚═╝ ██║██║        ██║   ██║  ██║
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝        ╚═╝   ╚═╝  ╚═╝
`

func (a *App) renderWelcome() string {
	logoRendered := styleLogo.Render(logo)
	subtitle := styleSubtitle.Render("Prompt Optimizer")

	var status string
	switch {
	case !a.state.providerReady:
		status = styleSubtitle.Render(fmt.Sprintf("Connecting to %s...", a.state.config.Provider))
	case a.state.offline:
		status = styleWarning.Render("Offline mode: using local templates")
		if a.state.providerError != nil {
			status += "\n" + styleSubtitle.Render(truncate(a.state.providerError.Error(), 70))
		}
	default:
		status = styleSubtitle.Render(fmt.Sprintf("%s / %s", a.state.config.Provider, a.state.config.Model))
	}

	inputBox := styleBox.Copy().
		Width(min(70, max(20, a.width-4))).
		BorderForeground(colorSecondary).
		Render(a.state.input.View())

	statusBar := styleStatusBar.Render("[Enter] Optimize  /help  /settings  [Esc] Quit")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		"",
		status,
		"",
		inputBox,
	)

	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, a.center(statusBar))
}
