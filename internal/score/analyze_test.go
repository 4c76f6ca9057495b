package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptr/internal/prompt"
)

func classification(d prompt.Domain, task prompt.TaskType) prompt.ClassificationResult {
	return prompt.ClassificationResult{Domain: d, TaskType: task, Complexity: prompt.ComplexityLow}
}

func hasTag(risks []string, tag string) bool {
	for _, r := range risks {
		if strings.HasPrefix(r, "["+tag+"]") {
			return true
		}
	}
	return false
}

func TestDataLeakageRisk(t *testing.T) {
	c := classification(prompt.DomainMLDS, prompt.TaskTrainModel)

	flagged := Analyze("Train a model on my dataset", c)
	assert.True(t, hasTag(flagged.Risks, "data-leakage"), flagged.Risks)
	assert.Contains(t, strings.Join(flagged.Risks, " "), "validation")

	clean := Analyze("Train a model on my dataset with validation and test splits", c)
	assert.False(t, hasTag(clean.Risks, "data-leakage"), clean.Risks)
}

func TestRiskRules(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		domain prompt.Domain
		tag    string
		want   bool
	}{
		{"integrity", "Please write my essay on Hamlet", prompt.DomainAcademic, "academic-integrity", true},
		{"integrity other domain", "Please write my essay on Hamlet", prompt.DomainWriting, "academic-integrity", false},
		{"secrets", "my api key is abc, why does auth fail", prompt.DomainCoding, "secrets", true},
		{"destructive", "script to rm -rf old builds", prompt.DomainCoding, "destructive", true},
		{"medical any domain", "what dosage of ibuprofen is safe", prompt.DomainGeneral, "high-stakes", true},
		{"pii", "validate a credit card number", prompt.DomainCoding, "pii", true},
		{"ssn inside a word", "write about the endlessness of space", prompt.DomainWriting, "pii", false},
		{"latest is not test", "train on the latest dataset", prompt.DomainMLDS, "data-leakage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text, classification(tt.domain, prompt.TaskGeneral))
			assert.Equal(t, tt.want, hasTag(got.Risks, tt.tag), got.Risks)
		})
	}
}

func TestSafetyScore(t *testing.T) {
	c := classification(prompt.DomainCoding, prompt.TaskDebug)
	got := Analyze("my password and api key leak when I rm -rf and drop table; also my ssn", c)
	require.Len(t, got.Risks, 3)
	assert.Equal(t, 40, got.SafetyScore)

	none := Analyze("sort a list of integers in go", c)
	assert.Empty(t, none.Risks)
	assert.Equal(t, 100, none.SafetyScore)
}

func TestMissingInfo(t *testing.T) {
	c := classification(prompt.DomainCoding, prompt.TaskWriteCode)
	got := Analyze("write a function", c)
	assert.Equal(t, []string{"programming language", "enough detail about the request", "desired output format"}, got.MissingInfo)
	require.Len(t, got.Suggestions, 3)
	assert.Equal(t, "Name the programming language and version", got.Suggestions[0])

	c.DetectedLanguage = "go"
	got = Analyze("Write a Go function that merges two sorted slices and return the code with an example", c)
	assert.Empty(t, got.MissingInfo)
}

func TestSuggestionsFollowMissingThenRisks(t *testing.T) {
	c := classification(prompt.DomainMLDS, prompt.TaskTrainModel)
	got := Analyze("Train a model on my dataset", c)

	require.NotEmpty(t, got.Suggestions)
	last := got.Suggestions[len(got.Suggestions)-1]
	assert.Equal(t, "Describe how data is split into train, validation and test sets", last)
}

func TestClarity(t *testing.T) {
	assert.Equal(t, 50, Clarity(""))
	assert.Equal(t, 60, Clarity("Explain recursion"))
	assert.Equal(t, 20, Clarity("stuff and things etc"))
	assert.Equal(t, 80, Clarity("Explain how recursion works in Go because I am preparing for an exam next week"))
}

func TestIntent(t *testing.T) {
	c := classification(prompt.DomainAcademic, prompt.TaskResearchQuestion)
	got := Analyze("Create a research question about climate change. Keep it narrow.", c)
	assert.Equal(t, "research question (academic): Create a research question about climate change.", got.Intent)

	assert.Equal(t, "research question (academic)", Analyze("", c).Intent)

	long := Analyze(strings.Repeat("a", 500), c)
	assert.Equal(t, len("research question (academic): ")+120, len(long.Intent))
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	c := classification(prompt.DomainCoding, prompt.TaskDebug)
	text := "fix my password check, it throws an exception"
	assert.Equal(t, Analyze(text, c), Analyze(text, c))
}

func TestAnalysisScoresClamped(t *testing.T) {
	c := classification(prompt.DomainCoding, prompt.TaskGeneral)
	text := strings.Repeat("password secret api key rm -rf drop table ssn credit card medical ", 3)
	got := Analyze(text, c)
	assert.GreaterOrEqual(t, got.SafetyScore, 0)
	assert.LessOrEqual(t, got.ClarityScore, 100)
}
