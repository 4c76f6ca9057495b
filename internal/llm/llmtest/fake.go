// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/promptr/internal/llm"
)

// Reply is one scripted answer. Err wins over Content.
type Reply struct {
	Content string
	Err     error
}

// Fake returns scripted replies in order and repeats the last one once the
// script runs out. Handler, when set, overrides the script.
type Fake struct {
	ProviderName string
	Handler      func(req *llm.CompletionRequest) (string, error)

	mu      sync.Mutex
	replies []Reply
	calls   []llm.CompletionRequest
}

func New(replies ...Reply) *Fake {
	return &Fake{ProviderName: "fake", replies: replies}
}

// Text is shorthand for a fake that always answers content
func Text(content string) *Fake {
	return New(Reply{Content: content})
}

// Failing always returns err
func Failing(err error) *Fake {
	return New(Reply{Err: err})
}

func (f *Fake) Name() string {
	if f.ProviderName == "" {
		return "fake"
	}
	return f.ProviderName
}

func (f *Fake) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (f *Fake) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	idx := len(f.calls)
	f.calls = append(f.calls, *req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.Handler != nil {
		content, err := f.Handler(req)
		if err != nil {
			return nil, err
		}
		return &llm.CompletionResponse{Content: content, Model: "fake"}, nil
	}

	if len(f.replies) == 0 {
		return &llm.CompletionResponse{Model: "fake"}, nil
	}
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	r := f.replies[idx]
	if r.Err != nil {
		return nil, r.Err
	}
	return &llm.CompletionResponse{Content: r.Content, Model: "fake"}, nil
}

// Calls returns a copy of every request received so far
func (f *Fake) Calls() []llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.CompletionRequest, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
