package score

import (
	"fmt"
	"strings"

	"github.com/sant0-9/promptr/internal/prompt"
)

const (
	clarityBase  = 50
	riskPenalty  = 20
	intentRunes  = 120
	vaguePenalty = 10
)

var imperativeStarts = []string{
	"explain", "write", "create", "help", "summarize", "analyze", "list", "describe",
	"compare", "generate", "review", "debug", "design", "draft", "build", "implement",
	"train", "find", "fix", "give", "make", "show", "teach",
}

var contextWords = []string{"because", "so that", "context", "goal", "audience", "using", "for my", "in order to"}

var vagueWords = []string{"something", "stuff", "etc", "thing", "whatever", "somehow"}

// Analyze reads the raw request locally. It is deterministic and makes no
// network calls.
func Analyze(text string, c prompt.ClassificationResult) prompt.PromptAnalysis {
	lower := strings.ToLower(text)

	var risks, missing, suggestions []string
	for _, r := range RiskRules {
		if r.applies(c.Domain) && r.matches(lower) {
			risks = append(risks, r.Risk())
		}
	}
	for _, r := range MissingRules {
		if r.applies(c.Domain) && !r.Present(lower, c) {
			missing = append(missing, r.Item)
			suggestions = append(suggestions, r.Suggestion)
		}
	}
	for _, r := range RiskRules {
		if r.applies(c.Domain) && r.matches(lower) {
			suggestions = append(suggestions, r.Remediation)
		}
	}

	return prompt.NewAnalysis(
		c.Domain,
		intent(text, c),
		risks,
		missing,
		suggestions,
		Clarity(text),
		100-riskPenalty*len(risks),
	)
}

// Clarity estimates how clear a request is
func Clarity(text string) int {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(lower)

	s := clarityBase
	switch n := len(words); {
	case n >= 50:
		s += 25
	case n >= 20:
		s += 20
	case n >= 8:
		s += 10
	}

	if strings.Contains(lower, "?") || (len(words) > 0 && isImperative(words[0])) {
		s += 10
	}
	if anyTerm(lower, contextWords) {
		s += 10
	}
	for _, w := range vagueWords {
		if prompt.HasTerm(lower, w) {
			s -= vaguePenalty
		}
	}
	return prompt.ClampScore(s)
}

func isImperative(word string) bool {
	word = strings.TrimFunc(word, func(r rune) bool { return r == ',' || r == ':' || r == '.' })
	for _, w := range imperativeStarts {
		if word == w {
			return true
		}
	}
	return false
}

func intent(text string, c prompt.ClassificationResult) string {
	head := fmt.Sprintf("%s (%s)", c.TaskType.Label(), c.Domain)
	if first := prompt.Truncate(prompt.FirstSentence(text), intentRunes); first != "" {
		return head + ": " + first
	}
	return head
}
