// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidInput indicates a non-positive or missing workload parameter
	TypeInvalidInput Type = "INVALID_INPUT"

	// TypeInvalidConfiguration indicates an instance, node or tier key with no rate or profile
	TypeInvalidConfiguration Type = "INVALID_CONFIGURATION"

	// TypeDivisionGuard indicates a division by zero was rejected before it happened
	TypeDivisionGuard Type = "DIVISION_GUARD"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates an application configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"
)

// Error represents a domain error with context
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

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
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

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// TypeOf returns the type of the first domain error in the chain, or TypeInternal
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// InvalidInput creates an input validation error for a named field
func InvalidInput(field, format string, args ...interface{}) *Error {
	return Newf(TypeInvalidInput, format, args...).WithContext("field", field)
}

// InvalidConfiguration creates an error for a key with no rate or profile
func InvalidConfiguration(kind, key string) *Error {
	return Newf(TypeInvalidConfiguration, "unknown %s %q", kind, key).
		WithContext("kind", kind).
		WithContext("key", key)
}

// DivisionGuard creates an error for a rejected division by zero
func DivisionGuard(quantity string) *Error {
	return Newf(TypeDivisionGuard, "cannot divide by zero %s", quantity).WithContext("quantity", quantity)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
