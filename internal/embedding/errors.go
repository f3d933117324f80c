package embedding

import "fmt"

// EmptyInputError indicates an attempt to embed empty or whitespace-only text.
// Empty input is rejected up front: a degenerate near-zero vector would
// silently pollute similarity rankings downstream.
type EmptyInputError struct {
	// Index is the position of the offending text in a batch call, -1 for
	// single-text calls.
	Index int
}

func (e *EmptyInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("cannot embed empty text (batch index %d)", e.Index)
	}
	return "cannot embed empty text"
}

// ServiceError indicates an upstream embedding service failure: timeout,
// quota exhaustion, or a malformed response.
type ServiceError struct {
	Message string
	Cause   error

	// RateLimited marks quota/rate errors; callers should back off
	// exponentially before retrying these.
	RateLimited bool

	// Retryable marks transient failures worth retrying. RateLimited
	// implies Retryable.
	Retryable bool
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
