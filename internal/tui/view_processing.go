package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptr/internal/pipeline"
)

var stages = []pipeline.Stage{
	pipeline.StageClassifying,
	pipeline.StageAnalyzing,
	pipeline.StageSynthesizing,
	pipeline.StageScoring,
}

func (a *App) renderProcessing() string {
	var b strings.Builder

	title := styleTitle.Render(a.state.spinner.View() + " Optimizing")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	asked := styleSubtitle.Render("> " + truncate(a.state.lastInput, 60))
	b.WriteString(a.center(asked))
	b.WriteString("\n\n")

	currentStage := 0
	if a.state.progress != nil {
		currentStage = a.state.progress.StageIndex
	}

	var stageLines []string
	for i, stage := range stages {
		var icon string
		var style lipgloss.Style

		switch {
		case i < currentStage:
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		case i == currentStage:
			icon = "[>]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		default:
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}

		line := style.Render(fmt.Sprintf("  %s  %-12s", icon, stage))
		if i == currentStage && a.state.progress != nil && a.state.progress.TotalItems > 0 {
			line += styleSubtitle.Render(fmt.Sprintf("  %d versions", a.state.progress.TotalItems))
		}
		stageLines = append(stageLines, line)
	}

	stagesBox := styleBox.Copy().
		Width(min(60, max(20, a.width-4))).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(a.center(stagesBox))
	b.WriteString("\n\n")

	if a.state.progress != nil && a.state.progress.Message != "" {
		b.WriteString(a.center(styleSubtitle.Render(truncate(a.state.progress.Message, 60))))
		b.WriteString("\n\n")
	}

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Cancel")))

	return a.centerVertically(b.String())
}
