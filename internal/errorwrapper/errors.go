package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidConfiguration indicates a missing or malformed required option
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDirectoryNotFound indicates a directory does not exist or is not readable
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrDirectoryRead indicates a non-existence I/O failure while reading a directory
	ErrDirectoryRead = errors.New("directory read error")
	// ErrDiffArtifactTimeout indicates the external differ did not produce its output in time
	ErrDiffArtifactTimeout = errors.New("diff artifact timeout")
	// ErrMissingSourceFile indicates a compose precondition failed for a source path
	ErrMissingSourceFile = errors.New("missing source file")
	// ErrCannotCreateDiffImage indicates the composed diff artifact could not be created
	ErrCannotCreateDiffImage = errors.New("cannot create diff image")
	// ErrExternalToolFailure indicates a failure surfaced from an external collaborator
	ErrExternalToolFailure = errors.New("external tool failure")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapSentinel ties an error to one of the sentinel error types above so
// callers can classify it with errors.Is while keeping the original cause.
func WrapSentinel(sentinel, cause error, message string) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", message, sentinel)
	}
	return fmt.Errorf("%s: %w: %w", message, sentinel, cause)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Unwrap makes every validation error classify as ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// AggregateError collects independent per-job failures into a single error.
// Used by sequential capture runs, which continue past individual failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("%d job(s) failed: %v", len(e.Errors), errors.Join(e.Errors...))
}

// Unwrap exposes the collected errors to errors.Is / errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError creates an aggregate error from a non-empty error list
func NewAggregateError(errs []error) *AggregateError {
	return &AggregateError{Errors: errs}
}
