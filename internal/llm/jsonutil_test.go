package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "plain object",
			input: `{"domain": "coding"}`,
			want:  map[string]any{"domain": "coding"},
		},
		{
			name:  "json fence",
			input: "```json\n{\"domain\": \"academic\"}\n```",
			want:  map[string]any{"domain": "academic"},
		},
		{
			name:  "bare fence",
			input: "```\n{\"a\": 1}\n```",
			want:  map[string]any{"a": float64(1)},
		},
		{
			name:  "one-line fence",
			input: "```json {\"domain\":\"coding\",\"task_type\":\"debug\"} ```",
			want:  map[string]any{"domain": "coding", "task_type": "debug"},
		},
		{
			name:  "fence after prose",
			input: "Here is the result:\n```json\n{\"a\": [1,],}\n```\nDone.",
			want:  map[string]any{"a": []any{float64(1)}},
		},
		{
			name:  "surrounding prose",
			input: "Sure! Here you go:\n{\"a\": \"b\"}\nHope that helps.",
			want:  map[string]any{"a": "b"},
		},
		{
			name:  "trailing comma and comment",
			input: "{\n  \"a\": \"x\", // first\n  \"b\": [1, 2,],\n}",
			want:  map[string]any{"a": "x", "b": []any{float64(1), float64(2)}},
		},
		{
			name:  "slashes inside strings survive",
			input: `{"url": "https://example.com"}`,
			want:  map[string]any{"url": "https://example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := ExtractJSON(tt.input)
			require.NotEmpty(t, raw)

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	for _, input := range []string{"", "no json here", "} backwards {", "```\n```"} {
		assert.Empty(t, ExtractJSON(input), "input %q", input)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "hello", StripFences("  hello  "))
	assert.Equal(t, "line one\nline two", StripFences("```text\nline one\nline two\n```"))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Score int `json:"score"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"score\": 88}\n```", &v))
	assert.Equal(t, 88, v.Score)

	var parseErr *ParseError
	err := DecodeJSON("no object", &v)
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, ErrNoJSON)
	assert.Equal(t, "no object", parseErr.Raw)

	assert.ErrorAs(t, DecodeJSON(`{"score": "high"}`, &v), &parseErr)
}
