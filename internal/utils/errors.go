package utils

import "fmt"

// WrappedError is a structured error carrying a short context string and
// the underlying cause.
type WrappedError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *WrappedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &WrappedError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *WrappedError) Unwrap() error {
	return e.Cause
}
