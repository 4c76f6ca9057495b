package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptr/internal/prompt"
)

func TestEveryDomainIsComplete(t *testing.T) {
	for _, d := range prompt.Domains {
		t.Run(string(d), func(t *testing.T) {
			tmpls := Templates(d)
			require.Contains(t, tmpls, prompt.TaskGeneral)
			assert.Contains(t, tmpls[prompt.TaskGeneral], "{user_request}")

			labels := VersionLabels(d)
			require.NotEmpty(t, labels)
			seen := map[prompt.VersionKey]bool{}
			for _, l := range labels {
				assert.False(t, seen[l.Key], "duplicate key %s", l.Key)
				seen[l.Key] = true
				assert.NotEmpty(t, l.Name)
				assert.NotEmpty(t, l.Instructions)
			}

			assert.NotEmpty(t, Persona(d))
		})
	}
}

func TestVersionOrder(t *testing.T) {
	assert.Equal(t, []prompt.VersionKey{"basic", "critical", "tutor", "safe"}, VersionKeys(prompt.DomainAcademic))
	assert.Equal(t, []prompt.VersionKey{"production", "research", "explainable", "performance"}, VersionKeys(prompt.DomainMLDS))
	assert.Equal(t, []prompt.VersionKey{"clean", "debug", "secure", "optimized"}, VersionKeys(prompt.DomainCoding))
	assert.Len(t, VersionLabelMap(prompt.DomainWriting), 4)
}

func TestUnknownDomainFallsBack(t *testing.T) {
	unknown := prompt.Domain("astrology")
	assert.Equal(t, Templates(DefaultDomain), Templates(unknown))
	assert.Equal(t, VersionLabels(DefaultDomain), VersionLabels(unknown))
	assert.Equal(t, Persona(DefaultDomain), Persona(unknown))
}

func TestTemplateFallsBackToGeneralTask(t *testing.T) {
	assert.Equal(t, Template(prompt.DomainCoding, prompt.TaskGeneral),
		Template(prompt.DomainCoding, prompt.TaskLiteratureReview))
	assert.NotEqual(t, Template(prompt.DomainCoding, prompt.TaskGeneral),
		Template(prompt.DomainCoding, prompt.TaskDebug))
}

func TestAccessorsReturnCopies(t *testing.T) {
	tmpls := Templates(prompt.DomainCoding)
	tmpls[prompt.TaskGeneral] = "changed"
	assert.NotEqual(t, "changed", Template(prompt.DomainCoding, prompt.TaskGeneral))

	labels := VersionLabels(prompt.DomainCoding)
	labels[0].Instructions[0] = "changed"
	labels[0].Name = "changed"
	again := VersionLabels(prompt.DomainCoding)
	assert.NotEqual(t, "changed", again[0].Instructions[0])
	assert.NotEqual(t, "changed", again[0].Name)
}

func TestFill(t *testing.T) {
	out := Fill("{role} wants {task} in {language}: {user_request} ({topic}, {context})", Values{
		Role:        "developer",
		Task:        "debug",
		Language:    "go",
		UserRequest: "fix the {role} bug",
	})
	assert.Equal(t, "developer wants debug in go: fix the {role} bug (not specified, not specified)", out)
}

func TestFillIsDeterministic(t *testing.T) {
	v := Values{Role: "student", Task: "explain", Topic: "entropy", UserRequest: "what is entropy?"}
	for _, d := range prompt.Domains {
		for task, tmpl := range Templates(d) {
			first := Fill(tmpl, v)
			assert.Equal(t, first, Fill(tmpl, v), "%s/%s", d, task)
			assert.False(t, strings.Contains(first, "{user_request}"), "%s/%s", d, task)
		}
	}
}
