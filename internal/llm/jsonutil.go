package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

	// jsonBlockPattern matches an object inside a fence, including a fence
	// opened and closed on the same line.
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")

	// ErrNoJSON is wrapped by ParseError when a response holds no object
	ErrNoJSON = errors.New("no JSON object in response")
)

// ParseError reports an LLM response that could not be decoded
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse LLM response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeJSON extracts the JSON object from content and decodes it into v.
// Failures are returned as *ParseError.
func DecodeJSON(content string, v any) error {
	body := ExtractJSON(content)
	if body == "" {
		return &ParseError{Raw: content, Err: ErrNoJSON}
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return &ParseError{Raw: content, Err: err}
	}
	return nil
}

// StripFences removes a Markdown code fence wrapping the response. Text that
// doesn't start with a fence is returned trimmed but otherwise untouched.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	var body []string
	in := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if in {
				break
			}
			in = true
			continue
		}
		if in {
			body = append(body, line)
		}
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// ExtractJSON pulls a JSON object out of an LLM response. It handles fenced
// blocks, leading or trailing prose, // comments and trailing commas.
// It returns "" when no object is present.
func ExtractJSON(content string) string {
	if m := jsonBlockPattern.FindStringSubmatch(content); m != nil {
		return cleanJSON(m[1])
	}
	content = StripFences(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}

	return cleanJSON(content[start : end+1])
}

// cleanJSON removes JavaScript-style comments and trailing commas
func cleanJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	return trailingCommaPattern.ReplaceAllString(strings.Join(lines, "\n"), "$1")
}

// stripLineComment removes a // comment from a JSON line, leaving // inside
// string values alone.
func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}

	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
