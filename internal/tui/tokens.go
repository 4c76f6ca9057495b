package tui

import (
	"fmt"
	"strings"
)

// contextLimit returns the context window size for a model
func contextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.Contains(model, "claude"):
		return 200000
	case strings.Contains(model, "gemini"):
		return 1000000
	case strings.Contains(model, "gpt-4o"), strings.Contains(model, "gpt-4-turbo"):
		return 128000
	case strings.Contains(model, "gpt-4"):
		return 8000
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		return 128000
	case strings.Contains(model, "mixtral"), strings.Contains(model, "mistral"):
		return 32000
	case strings.Contains(model, "qwen2.5"):
		return 32000
	}
	return 8000
}

// tokenUsage renders "~N tokens (P% of context)" for the active model
func tokenUsage(tokens int, model string) string {
	limit := contextLimit(model)
	pct := float64(tokens) / float64(limit) * 100
	return fmt.Sprintf("~%d tokens (%.1f%% of %s context)", tokens, pct, model)
}
