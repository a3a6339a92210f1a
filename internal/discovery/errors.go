// Package discovery finds candidate sources for a research topic.
package discovery

import "fmt"

// Error represents a search failure for a single query.
type Error struct {
	Query   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search error for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("search error for %q: %s", e.Query, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
