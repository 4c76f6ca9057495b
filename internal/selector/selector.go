// Package selector picks which generated version to surface by default.
package selector

import (
	"slices"
	"strings"

	"github.com/sant0-9/promptr/internal/prompt"
)

// RoleCategory is a coarse grouping of free-text roles
type RoleCategory string

const (
	RoleStudent       RoleCategory = "student"
	RoleResearcher    RoleCategory = "researcher"
	RoleDeveloper     RoleCategory = "developer"
	RoleDataScientist RoleCategory = "data_scientist"
	RoleEducator      RoleCategory = "educator"
	RoleWriter        RoleCategory = "writer"
	RoleGeneral       RoleCategory = "general"
)

var roleCategories = []struct {
	category RoleCategory
	terms    []string
}{
	{RoleDataScientist, []string{"data scientist", "data analyst", "analyst", "ml engineer", "data"}},
	{RoleEducator, []string{"teacher", "educator", "professor", "instructor", "lecturer", "tutor"}},
	{RoleResearcher, []string{"research", "phd", "postdoc", "scientist", "academic"}},
	{RoleStudent, []string{"student", "pupil", "learner"}},
	{RoleDeveloper, []string{"developer", "engineer", "programmer", "coder"}},
	{RoleWriter, []string{"writer", "author", "blogger", "novelist", "copywriter", "journalist"}},
}

// CategoryOf maps a free-text role onto a RoleCategory
func CategoryOf(role string) RoleCategory {
	lower := strings.ToLower(role)
	for _, rc := range roleCategories {
		for _, t := range rc.terms {
			if strings.Contains(lower, t) {
				return rc.category
			}
		}
	}
	return RoleGeneral
}

// Rule picks Key when the domain, role category and task match. Empty
// fields match anything.
type Rule struct {
	Domain prompt.Domain
	Roles  []RoleCategory
	Tasks  []prompt.TaskType
	Key    prompt.VersionKey
}

func (r Rule) matches(c prompt.ClassificationResult, role RoleCategory) bool {
	if r.Domain != "" && r.Domain != c.Domain {
		return false
	}
	if len(r.Roles) > 0 && !slices.Contains(r.Roles, role) {
		return false
	}
	if len(r.Tasks) > 0 && !slices.Contains(r.Tasks, c.TaskType) {
		return false
	}
	return true
}

// Rules are checked in order and the first match wins
var Rules = []Rule{
	{Domain: prompt.DomainAcademic, Roles: []RoleCategory{RoleStudent}, Tasks: []prompt.TaskType{prompt.TaskWrite}, Key: "safe"},
	{Domain: prompt.DomainAcademic, Roles: []RoleCategory{RoleStudent}, Key: "tutor"},
	{Domain: prompt.DomainAcademic, Roles: []RoleCategory{RoleResearcher}, Key: "critical"},
	{Domain: prompt.DomainAcademic, Tasks: []prompt.TaskType{prompt.TaskResearchQuestion, prompt.TaskLiteratureReview}, Key: "critical"},
	{Domain: prompt.DomainAcademic, Key: "basic"},

	{Domain: prompt.DomainMLDS, Roles: []RoleCategory{RoleResearcher}, Key: "research"},
	{Domain: prompt.DomainMLDS, Roles: []RoleCategory{RoleStudent, RoleEducator}, Key: "explainable"},
	{Domain: prompt.DomainMLDS, Tasks: []prompt.TaskType{prompt.TaskExplain, prompt.TaskAnalyzeData}, Key: "explainable"},
	{Domain: prompt.DomainMLDS, Key: "production"},

	{Domain: prompt.DomainCoding, Tasks: []prompt.TaskType{prompt.TaskDebug}, Key: "debug"},
	{Domain: prompt.DomainCoding, Tasks: []prompt.TaskType{prompt.TaskReview}, Key: "secure"},
	{Domain: prompt.DomainCoding, Key: "clean"},

	{Domain: prompt.DomainWriting, Tasks: []prompt.TaskType{prompt.TaskBrainstorm}, Key: "creative"},
	{Domain: prompt.DomainWriting, Roles: []RoleCategory{RoleDeveloper, RoleResearcher}, Key: "technical"},
	{Domain: prompt.DomainWriting, Roles: []RoleCategory{RoleWriter}, Tasks: []prompt.TaskType{prompt.TaskWrite}, Key: "creative"},
	{Domain: prompt.DomainWriting, Key: "concise"},

	{Domain: prompt.DomainGeneral, Tasks: []prompt.TaskType{prompt.TaskExplain}, Key: "detailed"},
	{Domain: prompt.DomainGeneral, Tasks: []prompt.TaskType{prompt.TaskSummarize}, Key: "structured"},
	{Domain: prompt.DomainGeneral, Tasks: []prompt.TaskType{prompt.TaskBrainstorm}, Key: "creative"},
	{Domain: prompt.DomainGeneral, Key: "basic"},
}

// Preferred returns the key the first matching rule names, or "" when no
// rule matches.
func Preferred(c prompt.ClassificationResult) prompt.VersionKey {
	role := CategoryOf(c.Role)
	for _, r := range Rules {
		if r.matches(c, role) {
			return r.Key
		}
	}
	return ""
}

// SelectBest picks the default version. When the preferred version is
// missing or empty it takes the first non-empty version in declared
// order. An empty set yields ("", "").
func SelectBest(c prompt.ClassificationResult, set prompt.OptimizedPromptSet) (prompt.VersionKey, string) {
	if set.Len() == 0 {
		return "", ""
	}

	if key := Preferred(c); key != "" {
		if text, ok := set.Text(key); ok && strings.TrimSpace(text) != "" {
			return key, text
		}
	}

	for _, v := range set.Versions {
		if strings.TrimSpace(v.Text) != "" {
			return v.Label.Key, v.Text
		}
	}
	first := set.Versions[0]
	return first.Label.Key, first.Text
}
