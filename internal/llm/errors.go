package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

var (
	// ErrNoProvider is returned when no provider is configured
	ErrNoProvider = errors.New("no LLM provider configured")

	// ErrEmptyResponse is returned when the provider answered with no text
	ErrEmptyResponse = errors.New("empty response from LLM")
)

// TransientError represents a temporary error that may succeed on retry.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError wraps an error as transient (retryable).
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// FatalError represents a permanent error that should not be retried.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError wraps an error as fatal (non-retryable).
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal reports whether err should not be retried.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// classifyStatus maps an HTTP status onto a transient or fatal error
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests, status >= 500:
		return NewTransientError(err)
	default:
		return NewFatalError(err)
	}
}

// classifySDKError inspects the typed errors each SDK returns. Anything
// without a status code (DNS, connection reset, timeouts) is transient.
func classifySDKError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return NewFatalError(fmt.Errorf("%s: %w", provider, err))
	}

	wrapped := fmt.Errorf("%s request failed: %w", provider, err)

	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return classifyStatus(oaiErr.StatusCode, wrapped)
	}

	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		return classifyStatus(antErr.StatusCode, wrapped)
	}

	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return classifyStatus(gErr.Code, wrapped)
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return classifyStatus(gErrPtr.Code, wrapped)
	}

	return NewTransientError(wrapped)
}

// FailureReason names the class of err for logs and metrics
func FailureReason(err error) string {
	var parseErr *ParseError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNoProvider):
		return "no_provider"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "provider"
	}
}
