// Package errors provides typed domain errors for the quote engine.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeValidation indicates a caller contract violation: a required
	// field is missing or out of domain for the declared property type.
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeConfig indicates a gap in the rate or policy tables, such as a
	// missing (commercial type, frequency) entry. These are caught in
	// tests, never in production.
	TypeConfig Type = "CONFIG_ERROR"

	// TypeParsing indicates a rates file that could not be parsed
	TypeParsing Type = "PARSING_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context.
// Every error is deterministic and caused by bad input or an incomplete
// rate table, so retrying without changing the input is never appropriate.
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(TypeValidation, message)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...interface{}) *Error {
	return Newf(TypeValidation, format, args...)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
