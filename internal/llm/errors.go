package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RateLimitError is returned when the provider answers 429.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// InvalidResponseError is returned when the output does not match the
// requested schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// UnavailableError wraps transport failures and 5xx answers.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TruncatedError is returned when the reply hit MaxTokens.
type TruncatedError struct {
	Content json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// classifyStatus maps an HTTP status from a provider SDK error.
func classifyStatus(status int, err error) error {
	if status == 429 {
		return &RateLimitError{Err: err}
	}
	return &UnavailableError{Err: err}
}

// retryable reports whether err is worth another attempt. Invalid output
// is retried at most once, tracked through invalidSeen.
func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var truncated *TruncatedError
	if errors.As(err, &truncated) {
		return false
	}

	var invalid *InvalidResponseError
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}
