// Package registry is the static knowledge of the optimizer: prompt
// templates per (domain, task), version labels per domain and expert
// personas. Nothing here changes at runtime.
package registry

import (
	"maps"
	"strings"

	"github.com/sant0-9/promptr/internal/prompt"
)

// DefaultDomain is used whenever a domain has no entry
const DefaultDomain = prompt.DomainGeneral

// NotSpecified fills placeholders that have no value
const NotSpecified = "not specified"

var templates = map[prompt.Domain]map[prompt.TaskType]string{
	prompt.DomainAcademic: {
		prompt.TaskGeneral: "You are helping a {role} with an academic task ({task}).\n" +
			"Topic: {topic}\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskResearchQuestion: "Act as a research advisor for a {role}.\n" +
			"Help formulate a focused, answerable research question about {topic}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskLiteratureReview: "Act as a research librarian guiding a {role} through a literature review on {topic}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskExplain: "Explain {topic} to a {role} step by step, starting from the fundamentals.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskSummarize: "Summarize the material on {topic} for a {role}, keeping the key arguments and evidence.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskWrite: "Coach a {role} through writing about {topic} without writing it for them.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
	},
	prompt.DomainCoding: {
		prompt.TaskGeneral: "You are assisting a {role} with a programming task ({task}).\n" +
			"Language: {language}\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskWriteCode: "Write {language} code for a {role}.\n" +
			"Requirement: {user_request}\n" +
			"Topic: {topic}\n" +
			"Context: {context}",
		prompt.TaskDebug: "Help a {role} debug a {language} problem.\n" +
			"Problem: {user_request}\n" +
			"Context: {context}",
		prompt.TaskReview: "Review {language} code for a {role}, covering correctness, readability and risk.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskExplain: "Explain {topic} in {language} to a {role}, with small runnable examples.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
	},
	prompt.DomainMLDS: {
		prompt.TaskGeneral: "You are assisting a {role} with a machine learning or data task ({task}).\n" +
			"Topic: {topic}\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskTrainModel: "Guide a {role} through training a model for {topic}.\n" +
			"Request: {user_request}\n" +
			"Tooling: {language}\n" +
			"Context: {context}",
		prompt.TaskAnalyzeData: "Help a {role} analyze data about {topic}.\n" +
			"Request: {user_request}\n" +
			"Tooling: {language}\n" +
			"Context: {context}",
		prompt.TaskExplain: "Explain {topic} to a {role}, connecting intuition, math and practice.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
	},
	prompt.DomainWriting: {
		prompt.TaskGeneral: "You are helping a {role} with a writing task ({task}).\n" +
			"Subject: {topic}\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskWrite: "Write a piece about {topic} for a {role}.\n" +
			"Brief: {user_request}\n" +
			"Context: {context}",
		prompt.TaskBrainstorm: "Brainstorm angles and ideas about {topic} with a {role}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskReview: "Edit and critique a draft about {topic} for a {role}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
	},
	prompt.DomainGeneral: {
		prompt.TaskGeneral: "You are assisting a {role} ({task}).\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskExplain: "Explain {topic} clearly to a {role}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskSummarize: "Summarize the following for a {role}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
		prompt.TaskBrainstorm: "Brainstorm options about {topic} with a {role}.\n" +
			"Request: {user_request}\n" +
			"Context: {context}",
	},
}

// Templates returns a copy of the task templates for domain, falling back
// to the default domain.
func Templates(domain prompt.Domain) map[prompt.TaskType]string {
	t, ok := templates[domain]
	if !ok {
		t = templates[DefaultDomain]
	}
	return maps.Clone(t)
}

// Template returns the template for (domain, task), falling back to the
// domain's general template.
func Template(domain prompt.Domain, task prompt.TaskType) string {
	t, ok := templates[domain]
	if !ok {
		t = templates[DefaultDomain]
	}
	if tmpl, ok := t[task]; ok {
		return tmpl
	}
	return t[prompt.TaskGeneral]
}

// Values are the placeholder substitutions for Fill
type Values struct {
	Role        string
	Task        string
	Context     string
	Topic       string
	Language    string
	UserRequest string
}

// Fill substitutes every placeholder in tmpl. Empty values become
// NotSpecified.
func Fill(tmpl string, v Values) string {
	r := strings.NewReplacer(
		"{role}", orDefault(v.Role),
		"{task}", orDefault(v.Task),
		"{context}", orDefault(v.Context),
		"{topic}", orDefault(v.Topic),
		"{language}", orDefault(v.Language),
		"{user_request}", orDefault(v.UserRequest),
	)
	return r.Replace(tmpl)
}

func orDefault(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotSpecified
	}
	return s
}
