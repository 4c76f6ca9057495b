package pipeline

import (
	"strings"
	"unicode/utf8"
)

// BatchSeparator splits prompts in batch input
const BatchSeparator = "---"

const minBatchEntry = 5

// SplitBatch splits text on BatchSeparator and keeps trimmed entries longer
// than five characters.
func SplitBatch(text string) []string {
	var out []string
	for _, part := range strings.Split(text, BatchSeparator) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > minBatchEntry {
			out = append(out, part)
		}
	}
	return out
}
