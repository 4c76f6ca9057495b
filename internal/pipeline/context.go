package pipeline

import (
	"strings"
	"unicode/utf8"

	"github.com/sant0-9/promptr/internal/prompt"
)

// MaxAttachmentBytes bounds how much attached content joins the request
const MaxAttachmentBytes = 8000

const truncatedMarker = "[attachment truncated]"

var attachmentLabels = map[prompt.FileType]string{
	prompt.FileDocuments: "Attached document",
	prompt.FileCode:      "Attached code",
	prompt.FileImages:    "Attached image description",
	prompt.FileAudio:     "Attached audio transcript",
	prompt.FileUnknown:   "Attached file",
}

// BuildContext appends attached content to the raw request under a
// labeled header. Empty content leaves raw untouched.
func BuildContext(raw, fileContent string, fileType prompt.FileType) string {
	content := strings.TrimSpace(fileContent)
	if content == "" {
		return raw
	}

	label, ok := attachmentLabels[fileType]
	if !ok {
		label = attachmentLabels[prompt.FileUnknown]
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(raw))
	b.WriteString("\n\n[")
	b.WriteString(label)
	b.WriteString("]\n")
	b.WriteString(limitAttachment(content, MaxAttachmentBytes))
	return b.String()
}

// limitAttachment cuts content at the last paragraph break within max
// bytes. Headings stay in place.
func limitAttachment(content string, max int) string {
	if len(content) <= max {
		return content
	}

	var cut string
	if i := strings.LastIndex(content[:max], "\n\n"); i > 0 {
		cut = strings.TrimSpace(content[:i])
	} else {
		cut = truncateBytes(content, max)
	}
	return cut + "\n" + truncatedMarker
}

// truncateBytes cuts s to at most n bytes without splitting a rune
func truncateBytes(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// EstimateTokens estimates token count (rough: 4 chars per token)
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}
