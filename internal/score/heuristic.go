// Package score rates candidate prompts and analyzes raw requests for
// risks and missing information.
package score

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sant0-9/promptr/internal/prompt"
)

const (
	baseScore       = 75
	lengthBonus     = 5
	shortThreshold  = 80
	longThreshold   = 250
	framingBonus    = 5
	structureBonus  = 5
	confidenceScale = 10
)

var framingWords = []string{"instructions", "requirements", "steps", "format", "you are"}

var structurePattern = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s+\S`)

// Heuristic scores text without any network call. The result is always
// within [0,100].
func Heuristic(text string, confidence float64) int {
	s := baseScore

	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n >= shortThreshold {
		s += lengthBonus
	}
	if n >= longThreshold {
		s += lengthBonus
	}

	lower := strings.ToLower(text)
	for _, w := range framingWords {
		if strings.Contains(lower, w) {
			s += framingBonus
			break
		}
	}
	if structurePattern.MatchString(text) {
		s += structureBonus
	}

	s += int(math.Round(prompt.ClampUnit(confidence) * confidenceScale))
	return prompt.ClampScore(s)
}
