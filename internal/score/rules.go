package score

import (
	"strings"

	"github.com/sant0-9/promptr/internal/prompt"
)

// AnyDomain matches every domain in a rule
const AnyDomain prompt.Domain = ""

// RiskRule flags a risk when any AnyOf term is present and no NoneOf term
// is. Terms match at the start of a word, so "train" also matches
// "training".
type RiskRule struct {
	Domain      prompt.Domain
	Tag         string
	AnyOf       []string
	NoneOf      []string
	Message     string
	Remediation string
}

// RiskRules are evaluated in order
var RiskRules = []RiskRule{
	{
		Domain:      prompt.DomainMLDS,
		Tag:         "data-leakage",
		AnyOf:       []string{"train", "dataset", "data set", "fit a model", "fine-tune", "fine tune"},
		NoneOf:      []string{"validation", "test", "holdout", "hold-out", "held-out"},
		Message:     "training data mentioned without a validation or test set",
		Remediation: "Describe how data is split into train, validation and test sets",
	},
	{
		Domain:      prompt.DomainMLDS,
		Tag:         "bias",
		AnyOf:       []string{"gender", "race", "ethnicity", "demographic", "religion"},
		Message:     "sensitive attributes involved in modelling",
		Remediation: "Ask for a fairness check across the sensitive groups",
	},
	{
		Domain:      prompt.DomainAcademic,
		Tag:         "academic-integrity",
		AnyOf:       []string{"write my", "do my", "complete my assignment", "finish my homework"},
		Message:     "request asks for finished work to submit",
		Remediation: "Ask for guidance, outlines or feedback instead of finished work",
	},
	{
		Domain:      prompt.DomainCoding,
		Tag:         "secrets",
		AnyOf:       []string{"password", "secret", "api key", "apikey", "private key", "access token"},
		Message:     "credentials mentioned in the prompt",
		Remediation: "Replace real credentials with placeholders",
	},
	{
		Domain:      prompt.DomainCoding,
		Tag:         "destructive",
		AnyOf:       []string{"rm -rf", "drop table", "drop database", "truncate table", "delete all"},
		Message:     "destructive operation requested",
		Remediation: "Ask for a dry run, confirmation step and backup plan",
	},
	{
		Domain:      AnyDomain,
		Tag:         "high-stakes",
		AnyOf:       []string{"medical", "diagnos", "prescription", "dosage", "symptom", "legal advice", "lawsuit", "sue "},
		Message:     "medical or legal advice requested",
		Remediation: "Ask the model to flag when a professional should be consulted",
	},
	{
		Domain:      AnyDomain,
		Tag:         "pii",
		AnyOf:       []string{"ssn", "social security", "credit card", "passport number", "bank account"},
		Message:     "personal data present",
		Remediation: "Remove personal identifiers before sending the prompt",
	},
}

// MissingRule reports Item as missing when Present returns false
type MissingRule struct {
	Domain     prompt.Domain
	Item       string
	Present    func(lower string, c prompt.ClassificationResult) bool
	Suggestion string
}

// MissingRules are evaluated in order
var MissingRules = []MissingRule{
	{
		Domain: prompt.DomainCoding,
		Item:   "programming language",
		Present: func(_ string, c prompt.ClassificationResult) bool {
			return c.DetectedLanguage != ""
		},
		Suggestion: "Name the programming language and version",
	},
	{
		Domain: prompt.DomainAcademic,
		Item:   "academic level or audience",
		Present: termsPresent("undergrad", "graduate", "high school", "phd", "level", "audience",
			"beginner", "grade", "master", "year"),
		Suggestion: "State the academic level or intended audience",
	},
	{
		Domain: prompt.DomainMLDS,
		Item:   "data description",
		Present: termsPresent("rows", "columns", "features", "csv", "samples", "records", "label",
			"target", "images", "tabular", "time series"),
		Suggestion: "Describe the data: size, features and target",
	},
	{
		Domain: AnyDomain,
		Item:   "enough detail about the request",
		Present: func(lower string, _ prompt.ClassificationResult) bool {
			return len(strings.Fields(lower)) >= 8
		},
		Suggestion: "Add background and the goal behind the request",
	},
	{
		Domain: AnyDomain,
		Item:   "desired output format",
		Present: termsPresent("format", "bullet", "table", "list", "json", "paragraph", "words",
			"steps", "outline", "example", "markdown", "summary", "code"),
		Suggestion: "Say what form the answer should take",
	},
}

func termsPresent(terms ...string) func(string, prompt.ClassificationResult) bool {
	return func(lower string, _ prompt.ClassificationResult) bool {
		return anyTerm(lower, terms)
	}
}

func (r RiskRule) applies(d prompt.Domain) bool {
	return r.Domain == AnyDomain || r.Domain == d
}

func (r RiskRule) matches(lower string) bool {
	return anyTerm(lower, r.AnyOf) && !anyTerm(lower, r.NoneOf)
}

// Risk renders the tagged risk string
func (r RiskRule) Risk() string {
	return "[" + r.Tag + "] " + r.Message
}

func (r MissingRule) applies(d prompt.Domain) bool {
	return r.Domain == AnyDomain || r.Domain == d
}

func anyTerm(lower string, terms []string) bool {
	for _, t := range terms {
		if prompt.HasTerm(lower, t) {
			return true
		}
	}
	return false
}
