package synth

import (
	"fmt"
	"strings"

	"github.com/sant0-9/promptr/internal/prompt"
	"github.com/sant0-9/promptr/internal/registry"
)

// Fallback builds every version from local templates. It never touches
// the network and gives identical output for identical input.
func Fallback(raw string, analysis prompt.PromptAnalysis, c prompt.ClassificationResult) prompt.OptimizedPromptSet {
	labels := registry.VersionLabels(c.Domain)
	set := prompt.OptimizedPromptSet{
		Domain:   c.Domain,
		Versions: make([]prompt.GeneratedVersion, len(labels)),
		Analysis: analysis,
	}
	for i, l := range labels {
		set.Versions[i] = prompt.GeneratedVersion{
			Label:  l,
			Text:   FallbackText(raw, l, analysis, c),
			Source: prompt.SourceTemplate,
		}
	}
	return set
}

// FallbackText renders one version from the registry template, a role and
// task context line and the version's instruction bullets.
func FallbackText(raw string, label prompt.VersionLabel, analysis prompt.PromptAnalysis, c prompt.ClassificationResult) string {
	role := orDefault(c.Role, "user")

	body := registry.Fill(registry.Template(c.Domain, c.TaskType), registry.Values{
		Role:        role,
		Task:        c.TaskType.Label(),
		Context:     c.Summary,
		Topic:       strings.Join(c.KeyTopics, ", "),
		Language:    c.DetectedLanguage,
		UserRequest: raw,
	})

	var b strings.Builder
	b.WriteString(body)
	fmt.Fprintf(&b, "\n\nYou are answering a %s working on a %s task (%s complexity).", role, c.TaskType.Label(), orDefault(string(c.Complexity), "medium"))
	fmt.Fprintf(&b, "\nApproach: %s. %s.", label.Name, label.Description)

	b.WriteString("\n\nInstructions:")
	for _, line := range label.Instructions {
		b.WriteString("\n- ")
		b.WriteString(line)
	}
	if len(analysis.MissingInfo) > 0 {
		b.WriteString("\n- Before answering, ask me for: ")
		b.WriteString(strings.Join(analysis.MissingInfo, "; "))
	}
	return b.String()
}
