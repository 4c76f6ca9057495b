package registry

import (
	"slices"

	"github.com/sant0-9/promptr/internal/prompt"
)

var versions = map[prompt.Domain][]prompt.VersionLabel{
	prompt.DomainAcademic: {
		{
			Key: "basic", Name: "Basic", Icon: "📘", Color: "#60A5FA",
			Description: "Clear, direct academic help",
			Instructions: []string{
				"State the learning goal in one sentence",
				"Ask for a structured answer with headings",
			},
		},
		{
			Key: "critical", Name: "Critical Thinking", Icon: "🧠", Color: "#A78BFA",
			Description: "Pushes analysis, evidence and counterarguments",
			Instructions: []string{
				"Ask for competing viewpoints and their evidence",
				"Request explicit assumptions and limitations",
				"End with open questions for further study",
			},
		},
		{
			Key: "tutor", Name: "Tutor", Icon: "🎓", Color: "#34D399",
			Description: "Socratic guidance instead of finished answers",
			Instructions: []string{
				"Guide with questions before giving answers",
				"Check understanding after each step",
				"Do not produce work the student should submit as their own",
			},
		},
		{
			Key: "safe", Name: "Integrity Safe", Icon: "🛡️", Color: "#FBBF24",
			Description: "Keeps the work within academic integrity rules",
			Instructions: []string{
				"Require citations for every factual claim",
				"Flag anything that would count as ghost-writing",
			},
		},
	},
	prompt.DomainMLDS: {
		{
			Key: "production", Name: "Production", Icon: "🏭", Color: "#60A5FA",
			Description: "Deployable pipelines and reproducibility",
			Instructions: []string{
				"Ask for a reproducible pipeline with pinned dependencies",
				"Require train, validation and test splits",
				"Include monitoring and failure handling",
			},
		},
		{
			Key: "research", Name: "Research", Icon: "🔬", Color: "#A78BFA",
			Description: "Experiment design and rigorous evaluation",
			Instructions: []string{
				"Ask for baselines and ablations",
				"Require statistical significance for claims",
			},
		},
		{
			Key: "explainable", Name: "Explainable", Icon: "💡", Color: "#34D399",
			Description: "Interpretability and clear reasoning",
			Instructions: []string{
				"Explain each modelling choice in plain language",
				"Ask for feature importance or similar diagnostics",
			},
		},
		{
			Key: "performance", Name: "Performance", Icon: "⚡", Color: "#F87171",
			Description: "Speed, memory and accuracy trade-offs",
			Instructions: []string{
				"State the target metric and budget up front",
				"Ask for profiling before optimizing",
			},
		},
	},
	prompt.DomainCoding: {
		{
			Key: "clean", Name: "Clean Code", Icon: "✨", Color: "#60A5FA",
			Description: "Readable, idiomatic and tested",
			Instructions: []string{
				"Ask for idiomatic code with clear names",
				"Request unit tests alongside the code",
			},
		},
		{
			Key: "debug", Name: "Debugging", Icon: "🐛", Color: "#F87171",
			Description: "Root cause first, then the fix",
			Instructions: []string{
				"Include the exact error message and inputs",
				"Ask for the root cause before the fix",
				"Request a regression test for the bug",
			},
		},
		{
			Key: "secure", Name: "Secure", Icon: "🔒", Color: "#FBBF24",
			Description: "Input validation and safe defaults",
			Instructions: []string{
				"Ask for input validation and error handling",
				"Never include real credentials in the prompt",
			},
		},
		{
			Key: "optimized", Name: "Optimized", Icon: "🚀", Color: "#34D399",
			Description: "Complexity and performance aware",
			Instructions: []string{
				"State input sizes and performance limits",
				"Ask for time and space complexity of the solution",
			},
		},
	},
	prompt.DomainWriting: {
		{
			Key: "concise", Name: "Concise", Icon: "✂️", Color: "#60A5FA",
			Description: "Short and to the point",
			Instructions: []string{
				"Set a word limit",
				"Ask for plain language and active voice",
			},
		},
		{
			Key: "creative", Name: "Creative", Icon: "🎨", Color: "#A78BFA",
			Description: "Voice, imagery and surprise",
			Instructions: []string{
				"Describe the desired voice and mood",
				"Invite unexpected angles",
			},
		},
		{
			Key: "persuasive", Name: "Persuasive", Icon: "📣", Color: "#F87171",
			Description: "Audience-driven argument",
			Instructions: []string{
				"Name the audience and the action you want from them",
				"Ask for a clear call to action",
			},
		},
		{
			Key: "technical", Name: "Technical", Icon: "📐", Color: "#34D399",
			Description: "Precise, structured documentation style",
			Instructions: []string{
				"Define terms on first use",
				"Ask for headings and numbered steps",
			},
		},
	},
	prompt.DomainGeneral: {
		{
			Key: "basic", Name: "Basic", Icon: "💬", Color: "#60A5FA",
			Description: "A clearer version of the request",
			Instructions: []string{
				"Restate the goal in one sentence",
			},
		},
		{
			Key: "detailed", Name: "Detailed", Icon: "📝", Color: "#A78BFA",
			Description: "Adds context, constraints and examples",
			Instructions: []string{
				"Add background the answer depends on",
				"List constraints and an example of a good answer",
			},
		},
		{
			Key: "structured", Name: "Structured", Icon: "🗂️", Color: "#34D399",
			Description: "Explicit sections and output format",
			Instructions: []string{
				"Split the request into numbered parts",
				"Specify the output format",
			},
		},
		{
			Key: "creative", Name: "Creative", Icon: "🎨", Color: "#FBBF24",
			Description: "Open ended and exploratory",
			Instructions: []string{
				"Invite several distinct approaches",
			},
		},
	},
}

// VersionLabels returns the labels for domain in declared order, falling
// back to the default domain.
func VersionLabels(domain prompt.Domain) []prompt.VersionLabel {
	v, ok := versions[domain]
	if !ok {
		v = versions[DefaultDomain]
	}
	out := make([]prompt.VersionLabel, len(v))
	for i, l := range v {
		l.Instructions = slices.Clone(l.Instructions)
		out[i] = l
	}
	return out
}

// VersionLabelMap is VersionLabels keyed by VersionKey
func VersionLabelMap(domain prompt.Domain) map[prompt.VersionKey]prompt.VersionLabel {
	labels := VersionLabels(domain)
	out := make(map[prompt.VersionKey]prompt.VersionLabel, len(labels))
	for _, l := range labels {
		out[l.Key] = l
	}
	return out
}

// VersionKeys returns the registered keys for domain in declared order
func VersionKeys(domain prompt.Domain) []prompt.VersionKey {
	labels := VersionLabels(domain)
	keys := make([]prompt.VersionKey, len(labels))
	for i, l := range labels {
		keys[i] = l.Key
	}
	return keys
}

var personas = map[prompt.Domain]string{
	prompt.DomainAcademic: "You are an experienced university professor and research mentor who values rigor and academic integrity.",
	prompt.DomainCoding:   "You are a senior software engineer who writes clean, secure, well-tested code.",
	prompt.DomainMLDS:     "You are a senior machine learning engineer and data scientist who insists on sound evaluation.",
	prompt.DomainWriting:  "You are a professional editor and writing coach with a sharp ear for voice and audience.",
	prompt.DomainGeneral:  "You are an expert prompt engineer who turns vague requests into precise instructions.",
}

// Persona returns the expert persona line for domain
func Persona(domain prompt.Domain) string {
	if p, ok := personas[domain]; ok {
		return p
	}
	return personas[DefaultDomain]
}
