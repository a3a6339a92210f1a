// Package synthesis reduces scored findings into the final research report.
package synthesis

import "fmt"

// ModelError represents a summarization collaborator failure.
// It is contained by falling back to the deterministic summary template.
type ModelError struct {
	Message string
	Cause   error
}

func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model error: %s", e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}
