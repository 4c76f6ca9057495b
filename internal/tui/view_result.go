package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	res := a.state.result
	if res == nil {
		return a.renderWelcome()
	}
	var b strings.Builder
	width := a.state.viewport.Width

	asked := styleSubtitle.Render("> " + truncate(a.state.lastInput, width))
	b.WriteString(a.center(asked))
	b.WriteString("\n\n")

	b.WriteString(a.center(a.renderTabs()))
	b.WriteString("\n")

	v, ok := a.selectedVersion()
	if !ok {
		b.WriteString(a.center(styleSubtitle.Render("No versions generated")))
		return a.centerVertically(b.String())
	}

	header := lipgloss.NewStyle().
		Foreground(versionColor(v.Label.Color)).
		Bold(true).
		Render(fmt.Sprintf("%s %s", v.Label.Icon, v.Label.Name))
	if v.Label.Key == res.BestKey {
		header += lipgloss.NewStyle().Foreground(colorWarning).Render("  ★ best match")
	}
	if v.Label.Description != "" {
		header += "\n" + styleSubtitle.Render(v.Label.Description)
	}

	body := styleBox.Copy().
		BorderForeground(versionColor(v.Label.Color)).
		Render(header + "\n\n" + a.state.viewport.View())
	b.WriteString(a.center(body))
	b.WriteString("\n")

	b.WriteString(a.center(a.renderDetails(width)))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[←/→] Versions  [↑/↓] Scroll  [b] Best  [n] New  [s] Settings  [?] Help")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}

// renderTabs lists every version, highlighting the selected one and
// starring the best
func (a *App) renderTabs() string {
	res := a.state.result
	var tabs []string
	for i, v := range res.Set.Versions {
		name := v.Label.Name
		if v.Label.Key == res.BestKey {
			name = "★ " + name
		}
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
		if i == a.state.selected {
			style = style.Foreground(versionColor(v.Label.Color)).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderDetails(width int) string {
	res := a.state.result
	v, _ := a.selectedVersion()
	analysis := res.Set.Analysis

	var lines []string

	if sc, ok := res.Scores[v.Label.Key]; ok {
		score := lipgloss.NewStyle().Foreground(scoreColor(sc.Score)).Bold(true).
			Render(fmt.Sprintf("%d/100", sc.Score))
		lines = append(lines, fmt.Sprintf("Score: %s %s", score, styleSubtitle.Render("("+string(sc.Source)+")")))
		for _, s := range sc.Suggestions {
			lines = append(lines, "  - "+truncate(s, width-4))
		}
	}

	lines = append(lines, fmt.Sprintf("Clarity %d  Safety %d  %s", analysis.ClarityScore, analysis.SafetyScore,
		styleSubtitle.Render(fmt.Sprintf("%s / %s / %s", res.Classification.Domain, res.Classification.TaskType, res.Classification.Complexity))))

	if len(analysis.Risks) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorError).Render("Risks:"))
		for _, r := range analysis.Risks {
			lines = append(lines, "  ! "+truncate(r, width-4))
		}
	}
	if len(analysis.MissingInfo) > 0 {
		lines = append(lines, styleWarning.Render("Missing info:"))
		for _, m := range analysis.MissingInfo {
			lines = append(lines, "  ? "+truncate(m, width-4))
		}
	}

	lines = append(lines, styleSubtitle.Render(tokenUsage(res.EstimatedTokens, a.state.config.Model)))

	return styleBox.Copy().Width(width + 2).Render(strings.Join(lines, "\n"))
}
