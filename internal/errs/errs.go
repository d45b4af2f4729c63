// Package errs defines the error types shared across the expense pipeline.
package errs

import "fmt"

// ExtractionError reports that no usable expense could be extracted from a
// free-text utterance.
type ExtractionError struct {
	Text   string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %q: %s", e.Text, e.Reason)
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CategorizationError reports a failed categorization attempt, wrapping the
// underlying cause.
type CategorizationError struct {
	Item     string
	Strategy string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q using %s: %v", e.Item, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
