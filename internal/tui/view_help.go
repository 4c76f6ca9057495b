package tui

import "strings"

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.center(styleTitle.Render("Help")))
	b.WriteString("\n\n")

	commands := []string{
		"  /help, /h      Show this help",
		"  /settings, /s  Open settings",
		"  /quit, /q      Quit promptr",
		"",
		"  Or type a rough prompt and press Enter",
	}
	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(commands, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleSubtitle.Render("Result Browser")))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  Left/Right     Cycle versions",
		"  Up/Down        Scroll the prompt",
		"  b              Jump to the best version (★)",
		"  n              Optimize another prompt",
		"  s              Settings",
		"  Esc            Go back / Quit",
	}
	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(shortcuts, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}
