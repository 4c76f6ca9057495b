// Package prompt holds the records that flow through the optimizer:
// classifications, analyses, version labels and generated prompt sets.
package prompt

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ClassificationResult describes what a raw request is about
type ClassificationResult struct {
	Domain           Domain     `json:"domain"`
	Role             string     `json:"role"`
	TaskType         TaskType   `json:"task_type"`
	Complexity       Complexity `json:"complexity"`
	KeyTopics        []string   `json:"key_topics"`
	DetectedLanguage string     `json:"detected_language,omitempty"`
	Confidence       float64    `json:"confidence"`
	Summary          string     `json:"summary"`
	Source           Source     `json:"source"`
}

// PromptAnalysis is the local, rule-based read of a raw prompt
type PromptAnalysis struct {
	Intent       string   `json:"intent"`
	Risks        []string `json:"risks"`
	MissingInfo  []string `json:"missing_info"`
	ClarityScore int      `json:"clarity_score"`
	SafetyScore  int      `json:"safety_score"`
	Suggestions  []string `json:"suggestions"`
	Domain       Domain   `json:"domain"`
}

// NewAnalysis builds a PromptAnalysis with both scores clamped to [0,100].
func NewAnalysis(domain Domain, intent string, risks, missing, suggestions []string, clarity, safety int) PromptAnalysis {
	return PromptAnalysis{
		Intent:       intent,
		Risks:        nonNil(risks),
		MissingInfo:  nonNil(missing),
		ClarityScore: ClampScore(clarity),
		SafetyScore:  ClampScore(safety),
		Suggestions:  nonNil(suggestions),
		Domain:       domain,
	}
}

// VersionKey identifies one flavour of optimized prompt within a domain
type VersionKey string

// VersionLabel is static configuration for a version
type VersionLabel struct {
	Key          VersionKey `json:"key"`
	Name         string     `json:"name"`
	Icon         string     `json:"icon"`
	Description  string     `json:"description"`
	Color        string     `json:"color"`
	Instructions []string   `json:"-"`
}

// GeneratedVersion is one filled-in version of the prompt
type GeneratedVersion struct {
	Label  VersionLabel
	Text   string
	Source Source
}

// OptimizedPromptSet holds every version generated for a single request.
// Versions keep the registry's declared order.
type OptimizedPromptSet struct {
	Domain   Domain
	Versions []GeneratedVersion
	Analysis PromptAnalysis
}

// Keys returns the version keys in declared order
func (s OptimizedPromptSet) Keys() []VersionKey {
	keys := make([]VersionKey, len(s.Versions))
	for i, v := range s.Versions {
		keys[i] = v.Label.Key
	}
	return keys
}

// Text returns the text for key, and whether the key exists
func (s OptimizedPromptSet) Text(key VersionKey) (string, bool) {
	for _, v := range s.Versions {
		if v.Label.Key == key {
			return v.Text, true
		}
	}
	return "", false
}

// Len returns the number of versions
func (s OptimizedPromptSet) Len() int {
	return len(s.Versions)
}

// ToMap renders the set as plain structured data for presentation layers
func (s OptimizedPromptSet) ToMap() map[string]any {
	versions := make(map[string]string, len(s.Versions))
	for _, v := range s.Versions {
		versions[string(v.Label.Key)] = v.Text
	}
	return map[string]any{
		"domain":   string(s.Domain),
		"versions": versions,
		"analysis": s.Analysis,
	}
}

// MarshalJSON uses the same shape as ToMap
func (s OptimizedPromptSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// ClampScore pins a score to [0,100]
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampUnit pins a confidence to [0,1]
func ClampUnit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// FirstSentence returns text up to the first sentence terminator or newline
func FirstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".?!\n"); i >= 0 {
		return strings.TrimSpace(s[:i+1])
	}
	return s
}

// HasTerm reports whether term occurs in lower starting at a word
// boundary, so "train" matches "training" but "api" misses "capital".
func HasTerm(lower, term string) bool {
	for offset := 0; offset <= len(lower); {
		i := strings.Index(lower[offset:], term)
		if i < 0 {
			return false
		}
		i += offset
		if i == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(lower[:i])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		offset = i + 1
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
