package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/promptr/internal/llm"
	"github.com/sant0-9/promptr/internal/prompt"
	"github.com/sant0-9/promptr/internal/prompts"
)

// MaxInputRunes bounds how much of the request is sent for classification
const MaxInputRunes = 2000

// ParseError reports a classification response that could not be decoded
type ParseError = llm.ParseError

// External classifies through an LLM
type External struct {
	provider    llm.Provider
	temperature float64
	maxTokens   int
}

func NewExternal(p llm.Provider) *External {
	return &External{provider: p, temperature: 0.1, maxTokens: 512}
}

type classificationJSON struct {
	Domain           string   `json:"domain"`
	Role             string   `json:"role"`
	TaskType         string   `json:"task_type"`
	Complexity       string   `json:"complexity"`
	KeyTopics        []string `json:"key_topics"`
	DetectedLanguage string   `json:"detected_language"`
	Confidence       float64  `json:"confidence"`
	Summary          string   `json:"summary"`
}

// Classify asks the provider for a classification. Unknown enum values are
// clamped to defaults; transport and decoding failures are returned.
func (e *External) Classify(ctx context.Context, text string) (prompt.ClassificationResult, error) {
	if e == nil || e.provider == nil {
		return prompt.ClassificationResult{}, llm.ErrNoProvider
	}

	instruction, err := prompts.Classify(prompt.Truncate(text, MaxInputRunes))
	if err != nil {
		return prompt.ClassificationResult{}, err
	}

	out, err := llm.Generate(ctx, e.provider, prompts.ClassifySystem, instruction, e.temperature, e.maxTokens)
	if err != nil {
		return prompt.ClassificationResult{}, fmt.Errorf("classify: %w", err)
	}

	return ParseClassification(out)
}

// ParseClassification decodes a raw LLM answer, fenced or not
func ParseClassification(raw string) (prompt.ClassificationResult, error) {
	var wire classificationJSON
	if err := llm.DecodeJSON(raw, &wire); err != nil {
		return prompt.ClassificationResult{}, err
	}

	domain, _ := prompt.ParseDomain(wire.Domain)
	task, _ := prompt.ParseTaskType(wire.TaskType)
	complexity, _ := prompt.ParseComplexity(wire.Complexity)

	role := strings.TrimSpace(wire.Role)
	if role == "" {
		role = DefaultRole(domain)
	}
	summary := strings.TrimSpace(wire.Summary)
	if summary == "" {
		summary = summarize(task, domain)
	}

	return prompt.ClassificationResult{
		Domain:           domain,
		Role:             role,
		TaskType:         task,
		Complexity:       complexity,
		KeyTopics:        cleanTopics(wire.KeyTopics),
		DetectedLanguage: cleanLanguage(wire.DetectedLanguage),
		Confidence:       prompt.ClampUnit(wire.Confidence),
		Summary:          summary,
		Source:           prompt.SourceLLM,
	}, nil
}

func cleanTopics(topics []string) []string {
	out := make([]string, 0, min(len(topics), maxKeyTopics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == maxKeyTopics {
			break
		}
	}
	return out
}

func cleanLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch lang {
	case "none", "null", "n/a", "unknown":
		return ""
	}
	return lang
}
