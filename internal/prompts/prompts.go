// Package prompts holds the instructions sent to the LLM. Each one is an
// embedded markdown file rendered with text/template.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/sant0-9/promptr/internal/prompt"
)

// ClassifySystem is the system turn paired with the classify instruction
const ClassifySystem = "You are a precise request classifier. You answer with JSON only."

// ScoreSystem is the system turn paired with the score instruction
const ScoreSystem = "You are a strict prompt quality reviewer. You answer with JSON only."

var (
	//go:embed classify.md
	classifySource string

	//go:embed synthesize.md
	synthesizeSource string

	//go:embed score.md
	scoreSource string
)

var funcs = template.FuncMap{"join": strings.Join}

var (
	classifyTmpl   = template.Must(template.New("classify").Funcs(funcs).Parse(classifySource))
	synthesizeTmpl = template.Must(template.New("synthesize").Funcs(funcs).Parse(synthesizeSource))
	scoreTmpl      = template.Must(template.New("score").Funcs(funcs).Parse(scoreSource))
)

// Classify renders the classification instruction for text, listing every
// allowed enum value.
func Classify(text string) (string, error) {
	data := struct {
		Text         string
		Domains      []string
		TaskTypes    []string
		Complexities []string
	}{
		Text:         text,
		Domains:      toStrings(prompt.Domains),
		TaskTypes:    toStrings(prompt.TaskTypes),
		Complexities: []string{string(prompt.ComplexityLow), string(prompt.ComplexityMedium), string(prompt.ComplexityHigh)},
	}
	return render(classifyTmpl, data)
}

// SynthesizeData is everything the synthesis instruction mentions
type SynthesizeData struct {
	Persona  string
	Domain   prompt.Domain
	Role     string
	Task     string
	Analysis prompt.PromptAnalysis
	Labels   []prompt.VersionLabel
}

// KeyList renders the expected keys as a quoted, comma separated list
func (d SynthesizeData) KeyList() string {
	quoted := make([]string, len(d.Labels))
	for i, l := range d.Labels {
		quoted[i] = fmt.Sprintf("%q", l.Key)
	}
	return strings.Join(quoted, ", ")
}

func Synthesize(d SynthesizeData) (string, error) {
	return render(synthesizeTmpl, d)
}

func Score(text string) (string, error) {
	return render(scoreTmpl, struct{ Text string }{Text: text})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
