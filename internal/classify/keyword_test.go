package classify

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sant0-9/promptr/internal/prompt"
)

func TestClassifyFallback(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		domain   prompt.Domain
		task     prompt.TaskType
		role     string
		language string
	}{
		{
			name:   "machine learning explanation",
			input:  "Explain machine learning to me",
			domain: prompt.DomainMLDS,
			task:   prompt.TaskExplain,
			role:   "data scientist",
		},
		{
			name:     "python function",
			input:    "Help me write a Python sorting function",
			domain:   prompt.DomainCoding,
			task:     prompt.TaskWriteCode,
			role:     "developer",
			language: "python",
		},
		{
			name:   "research question",
			input:  "Create a research question about climate change",
			domain: prompt.DomainAcademic,
			task:   prompt.TaskResearchQuestion,
			role:   "student",
		},
		{
			name:   "model training",
			input:  "Train a model on my dataset",
			domain: prompt.DomainMLDS,
			task:   prompt.TaskTrainModel,
			role:   "data scientist",
		},
		{
			name:   "blog post",
			input:  "Draft a blog post with a friendly tone",
			domain: prompt.DomainWriting,
			task:   prompt.TaskWrite,
			role:   "writer",
		},
		{
			name:   "nothing matches",
			input:  "hello there",
			domain: prompt.DomainGeneral,
			task:   prompt.TaskGeneral,
			role:   "general user",
		},
		{
			name:   "explicit role wins over default",
			input:  "I am a teacher and need an essay prompt for my students",
			domain: prompt.DomainAcademic,
			task:   prompt.TaskWrite,
			role:   "educator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFallback(tt.input)
			assert.Equal(t, tt.domain, got.Domain)
			assert.Equal(t, tt.task, got.TaskType)
			assert.Equal(t, tt.role, got.Role)
			assert.Equal(t, tt.language, got.DetectedLanguage)
			assert.Equal(t, prompt.SourceKeyword, got.Source)
		})
	}
}

func TestClassifyFallbackEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		got := ClassifyFallback(input)
		assert.Equal(t, prompt.DomainGeneral, got.Domain)
		assert.Zero(t, got.Confidence)
		assert.Equal(t, prompt.ComplexityLow, got.Complexity)
		assert.Empty(t, got.KeyTopics)
		assert.NotNil(t, got.KeyTopics)
	}
}

func TestTieBreakPrefersCoding(t *testing.T) {
	// one coding keyword and one ml keyword
	got := ClassifyFallback("a script and a model")
	assert.Equal(t, prompt.DomainCoding, got.Domain)

	// one ml keyword and one academic keyword
	got = ClassifyFallback("the dataset for my thesis")
	assert.Equal(t, prompt.DomainMLDS, got.Domain)
}

func TestConfidenceSaturates(t *testing.T) {
	got := ClassifyFallback("code function bug debug python refactor algorithm sql")
	assert.Equal(t, prompt.DomainCoding, got.Domain)
	assert.Equal(t, 0.9, got.Confidence)
	assert.Len(t, got.KeyTopics, maxKeyTopics)

	got = ClassifyFallback("fix this bug in my code")
	assert.InDelta(t, 0.4, got.Confidence, 1e-9)
}

func TestKeywordsMatchAtWordStart(t *testing.T) {
	for _, input := range []string{
		"What is the capital of France?",
		"Find a therapist near me",
		"Read the unicode table aloud",
	} {
		got := ClassifyFallback(input)
		assert.Equal(t, prompt.DomainGeneral, got.Domain, input)
		assert.Empty(t, got.KeyTopics, input)
	}

	got := ClassifyFallback("Debugging my programs")
	assert.Equal(t, prompt.DomainCoding, got.Domain)
	assert.Equal(t, []string{"debug", "program"}, got.KeyTopics)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my javascript app", "javascript"},
		{"a java servlet", "java"},
		{"port this from Java to Golang", "java"},
		{"golang worker pool", "go"},
		{"modern c++ templates", "c++"},
		{"I trust this", ""},
		{"let's go shopping", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.input))
		})
	}
}

func TestDetectComplexity(t *testing.T) {
	assert.Equal(t, prompt.ComplexityLow, detectComplexity("short request"))
	assert.Equal(t, prompt.ComplexityMedium, detectComplexity(strings.Repeat("word ", 20)))
	assert.Equal(t, prompt.ComplexityHigh, detectComplexity(strings.Repeat("word ", 80)))

	assert.Equal(t, prompt.ComplexityMedium, detectComplexity("Why? How? When?"))
	assert.Equal(t, prompt.ComplexityMedium, detectComplexity("Plan:\n1. parse\n2. emit"))
	assert.Equal(t, prompt.ComplexityHigh, detectComplexity(strings.Repeat("word ", 20)+"\n- one\n- two"))
}

func TestClassifyFallbackProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocab := []string{"code", "model", "essay", "story", "the", "and", "?", "train",
		"python", "research", "1.", "-", "\n", "日本語", "", "dataset", "poem"}

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(40); n > 0; n-- {
			b.WriteString(vocab[rng.Intn(len(vocab))])
			b.WriteByte(' ')
		}
		got := ClassifyFallback(b.String())

		assert.GreaterOrEqual(t, got.Confidence, 0.0)
		assert.LessOrEqual(t, got.Confidence, confidenceCeiling)
		assert.True(t, slices.Contains(prompt.Domains, got.Domain), "domain %q", got.Domain)
		assert.True(t, slices.Contains(prompt.TaskTypes, got.TaskType), "task %q", got.TaskType)
		assert.LessOrEqual(t, len(got.KeyTopics), maxKeyTopics)
	}
}
