package track

import "fmt"

// InvalidIdentifierError reports an identifier that failed validation.
type InvalidIdentifierError struct {
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier: %s", e.Reason)
}

// InvalidFrameError reports a frame with non-finite, negative-size, or
// out-of-range fields.
type InvalidFrameError struct {
	Reason string
}

func (e *InvalidFrameError) Error() string {
	return fmt.Sprintf("invalid frame: %s", e.Reason)
}

// ValidationError reports context metadata that failed validation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ResourceLimitError reports that inserting a new element would exceed the
// registry's capacity. Updating an existing identifier never hits this.
type ResourceLimitError struct {
	Limit   int
	Current int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("registry at capacity: %d/%d elements", e.Current, e.Limit)
}

// NotFoundError reports a lookup for an identifier that is not tracked.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("element not found: %q", e.Identifier)
}

// PatternError reports a query pattern that failed to compile as a regular
// expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
