package assembler

import "fmt"

// GenerationServiceError indicates the external generation backend failed.
// These are retry-later errors; the request payload itself was valid.
type GenerationServiceError struct {
	Task    string
	Message string
	Cause   error
}

func (e *GenerationServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed for task %s: %s: %v", e.Task, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed for task %s: %s", e.Task, e.Message)
}

func (e *GenerationServiceError) Unwrap() error {
	return e.Cause
}
