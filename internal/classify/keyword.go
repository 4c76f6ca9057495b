// Package classify works out what a raw request is about. The keyword
// classifier is local and total; the external classifier asks an LLM and
// reports failures so the caller can fall back.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sant0-9/promptr/internal/prompt"
)

const (
	confidenceStep    = 0.2
	confidenceCeiling = 0.9
	maxKeyTopics      = 5
)

type domainKeywords struct {
	domain   prompt.Domain
	keywords []string
}

// domainTable is declared in tie-break priority order. Keyword lists are
// disjoint across domains. Keywords match at the start of a word.
var domainTable = []domainKeywords{
	{prompt.DomainCoding, []string{
		"code", "function", "bug", "debug", "python", "javascript", "typescript", "java",
		"golang", "rust", "api", "compile", "script", "program", "algorithm", "refactor",
		"sql", "stack trace", "repository", "unit test", "frontend", "backend",
	}},
	{prompt.DomainMLDS, []string{
		"machine learning", "deep learning", "neural", "model", "dataset", "train",
		"regression", "classifier", "pandas", "feature", "accuracy", "statistics",
		"visualization", "data analysis", "prediction", "clustering", "overfitting",
	}},
	{prompt.DomainAcademic, []string{
		"research", "essay", "thesis", "paper", "literature", "citation", "hypothesis",
		"study", "assignment", "homework", "exam", "lecture", "professor", "journal",
		"academic", "dissertation", "student",
	}},
	{prompt.DomainWriting, []string{
		"story", "poem", "blog", "article", "novel", "email", "letter", "headline",
		"narrative", "character", "tone", "draft", "creative", "marketing", "copywriting",
	}},
}

type language struct {
	name  string
	terms []string
}

// languageTable is scanned in order and the first match wins
var languageTable = []language{
	{"javascript", []string{"javascript", "node.js", "nodejs", "react"}},
	{"typescript", []string{"typescript"}},
	{"python", []string{"python", "pandas", "numpy", "django", "flask", "pytorch"}},
	{"java", []string{"java", "spring boot"}},
	{"go", []string{"golang"}},
	{"rust", []string{"rust", "cargo"}},
	{"c++", []string{"c++", "cpp"}},
	{"c#", []string{"c#", ".net"}},
	{"ruby", []string{"ruby", "rails"}},
	{"php", []string{"php"}},
	{"swift", []string{"swift"}},
	{"kotlin", []string{"kotlin"}},
	{"sql", []string{"sql", "postgres", "mysql"}},
}

var languagePatterns = compileLanguages(languageTable)

func compileLanguages(table []language) [][]*regexp.Regexp {
	out := make([][]*regexp.Regexp, len(table))
	for i, l := range table {
		for _, term := range l.terms {
			out[i] = append(out[i], regexp.MustCompile(`(?i)(?:^|[^\w])`+regexp.QuoteMeta(term)+`(?:$|[^\w])`))
		}
	}
	return out
}

type roleKeywords struct {
	role     string
	keywords []string
}

var roleTable = []roleKeywords{
	{"data scientist", []string{"data scientist", "analyst"}},
	{"researcher", []string{"researcher", "phd", "postdoc", "my research"}},
	{"educator", []string{"teacher", "professor", "instructor", "my students", "lesson plan"}},
	{"student", []string{"student", "homework", "assignment", "my class", "exam"}},
	{"developer", []string{"developer", "engineer", "programmer", "my app", "my code"}},
	{"writer", []string{"writer", "author", "blogger", "novelist"}},
}

var defaultRoles = map[prompt.Domain]string{
	prompt.DomainAcademic: "student",
	prompt.DomainCoding:   "developer",
	prompt.DomainMLDS:     "data scientist",
	prompt.DomainWriting:  "writer",
	prompt.DomainGeneral:  "general user",
}

// DefaultRole is the role assumed for a domain when the text names none
func DefaultRole(d prompt.Domain) string {
	if r, ok := defaultRoles[d]; ok {
		return r
	}
	return defaultRoles[prompt.DomainGeneral]
}

type taskKeywords struct {
	task     prompt.TaskType
	keywords []string
}

// taskTable is first-match; more specific tasks come first
var taskTable = []taskKeywords{
	{prompt.TaskLiteratureReview, []string{"literature review", "related work", "survey of"}},
	{prompt.TaskResearchQuestion, []string{"research question", "hypothesis"}},
	{prompt.TaskDebug, []string{"debug", "fix", "error", "bug", "not working", "traceback", "exception"}},
	{prompt.TaskReview, []string{"review", "feedback on", "critique", "improve my"}},
	{prompt.TaskTrainModel, []string{"train", "fine-tune", "fine tune"}},
	{prompt.TaskAnalyzeData, []string{"analyze", "analyse", "analysis", "visualize", "dataset"}},
	{prompt.TaskSummarize, []string{"summarize", "summarise", "summary", "tl;dr"}},
	{prompt.TaskWriteCode, []string{"write a function", "implement", "function", "script", "code", "build a"}},
	{prompt.TaskBrainstorm, []string{"brainstorm", "ideas", "suggest"}},
	{prompt.TaskWrite, []string{"write", "draft", "compose", "essay", "story", "poem", "email"}},
	{prompt.TaskExplain, []string{"explain", "what is", "how does", "why does", "teach me", "understand"}},
}

var enumerationPattern = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[-*•])\s+\S`)

// ClassifyFallback classifies text with keyword tables only. It has no
// error conditions.
func ClassifyFallback(text string) prompt.ClassificationResult {
	lower := strings.ToLower(text)

	domain := prompt.DomainGeneral
	best := 0
	var topics []string
	for _, entry := range domainTable {
		matched := matchAll(lower, entry.keywords)
		if len(matched) > best {
			best = len(matched)
			domain = entry.domain
			topics = matched
		}
	}
	if len(topics) > maxKeyTopics {
		topics = topics[:maxKeyTopics]
	}

	task := detectTask(lower)
	return prompt.ClassificationResult{
		Domain:           domain,
		Role:             detectRole(lower, domain),
		TaskType:         task,
		Complexity:       detectComplexity(text),
		KeyTopics:        nonNil(topics),
		DetectedLanguage: DetectLanguage(text),
		Confidence:       min(float64(best)*confidenceStep, confidenceCeiling),
		Summary:          summarize(task, domain),
		Source:           prompt.SourceKeyword,
	}
}

// DetectLanguage returns the first programming language named in text,
// or "" when none is.
func DetectLanguage(text string) string {
	for i, patterns := range languagePatterns {
		for _, re := range patterns {
			if re.MatchString(text) {
				return languageTable[i].name
			}
		}
	}
	return ""
}

func matchAll(lower string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if prompt.HasTerm(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if prompt.HasTerm(lower, kw) {
			return true
		}
	}
	return false
}

func detectRole(lower string, domain prompt.Domain) string {
	for _, entry := range roleTable {
		if containsAny(lower, entry.keywords) {
			return entry.role
		}
	}
	return DefaultRole(domain)
}

func detectTask(lower string) prompt.TaskType {
	for _, entry := range taskTable {
		if containsAny(lower, entry.keywords) {
			return entry.task
		}
	}
	return prompt.TaskGeneral
}

func detectComplexity(text string) prompt.Complexity {
	words := len(strings.Fields(text))
	var c prompt.Complexity
	switch {
	case words < 12:
		c = prompt.ComplexityLow
	case words < 60:
		c = prompt.ComplexityMedium
	default:
		c = prompt.ComplexityHigh
	}

	if strings.Count(text, "?") >= 3 || len(enumerationPattern.FindAllString(text, -1)) >= 2 {
		c = c.Bump()
	}
	return c
}

func summarize(task prompt.TaskType, domain prompt.Domain) string {
	return fmt.Sprintf("%s request in the %s domain", task.Label(), domain)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
