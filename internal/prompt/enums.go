package prompt

import "strings"

// Domain is the top-level subject area used to pick templates and versions
type Domain string

const (
	DomainAcademic Domain = "academic"
	DomainCoding   Domain = "coding"
	DomainMLDS     Domain = "ml_ds"
	DomainWriting  Domain = "writing"
	DomainGeneral  Domain = "general"
)

// Domains lists every domain in tie-break priority order
var Domains = []Domain{DomainCoding, DomainMLDS, DomainAcademic, DomainWriting, DomainGeneral}

var domainAliases = map[string]Domain{
	"academic":        DomainAcademic,
	"research":        DomainAcademic,
	"education":       DomainAcademic,
	"coding":          DomainCoding,
	"code":            DomainCoding,
	"programming":     DomainCoding,
	"software":        DomainCoding,
	"ml_ds":           DomainMLDS,
	"ml":              DomainMLDS,
	"ml-ds":           DomainMLDS,
	"data-science":    DomainMLDS,
	"data_science":    DomainMLDS,
	"ml-data-science": DomainMLDS,
	"writing":         DomainWriting,
	"creative":        DomainWriting,
	"general":         DomainGeneral,
}

// ParseDomain maps a loose string onto a Domain. Unknown values return
// DomainGeneral and false.
func ParseDomain(s string) (Domain, bool) {
	d, ok := domainAliases[normalize(s)]
	if !ok {
		return DomainGeneral, false
	}
	return d, true
}

// TaskType is a specific activity within a domain
type TaskType string

const (
	TaskExplain          TaskType = "explain"
	TaskWriteCode        TaskType = "write_code"
	TaskDebug            TaskType = "debug"
	TaskReview           TaskType = "review"
	TaskResearchQuestion TaskType = "research_question"
	TaskLiteratureReview TaskType = "literature_review"
	TaskSummarize        TaskType = "summarize"
	TaskAnalyzeData      TaskType = "analyze_data"
	TaskTrainModel       TaskType = "train_model"
	TaskWrite            TaskType = "write"
	TaskBrainstorm       TaskType = "brainstorm"
	TaskGeneral          TaskType = "general"
)

// TaskTypes lists every task type
var TaskTypes = []TaskType{
	TaskExplain, TaskWriteCode, TaskDebug, TaskReview, TaskResearchQuestion,
	TaskLiteratureReview, TaskSummarize, TaskAnalyzeData, TaskTrainModel,
	TaskWrite, TaskBrainstorm, TaskGeneral,
}

// ParseTaskType returns TaskGeneral and false for unknown values.
func ParseTaskType(s string) (TaskType, bool) {
	n := strings.ReplaceAll(normalize(s), "-", "_")
	for _, t := range TaskTypes {
		if string(t) == n {
			return t, true
		}
	}
	return TaskGeneral, false
}

// Label returns a human readable form of the task type
func (t TaskType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Complexity is a coarse estimate of how demanding a request is
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// ParseComplexity returns ComplexityMedium and false for unknown values.
func ParseComplexity(s string) (Complexity, bool) {
	switch Complexity(normalize(s)) {
	case ComplexityLow:
		return ComplexityLow, true
	case ComplexityMedium:
		return ComplexityMedium, true
	case ComplexityHigh:
		return ComplexityHigh, true
	default:
		return ComplexityMedium, false
	}
}

// Bump raises the complexity by one level, saturating at high
func (c Complexity) Bump() Complexity {
	switch c {
	case ComplexityLow:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// Source records which path produced a value
type Source string

const (
	SourceLLM       Source = "llm"
	SourceKeyword   Source = "keyword"
	SourceTemplate  Source = "template"
	SourceHeuristic Source = "heuristic"
)

// FileType identifies the kind of attached content
type FileType string

const (
	FileDocuments FileType = "documents"
	FileCode      FileType = "code"
	FileImages    FileType = "images"
	FileAudio     FileType = "audio"
	FileUnknown   FileType = "unknown"
)

// ParseFileType returns FileUnknown for anything it doesn't recognise
func ParseFileType(s string) FileType {
	switch FileType(normalize(s)) {
	case FileDocuments, "document", "doc", "docs":
		return FileDocuments
	case FileCode:
		return FileCode
	case FileImages, "image":
		return FileImages
	case FileAudio:
		return FileAudio
	default:
		return FileUnknown
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
