package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCode identifies a well-known failure category shared by the color,
// gradient and storage layers.
type ErrorCode string

const (
	ErrCodeInvalidColor      ErrorCode = "INVALID_COLOR_FORMAT"
	ErrCodeInvalidGradient   ErrorCode = "INVALID_GRADIENT"
	ErrCodeMissingIdentifier ErrorCode = "MISSING_IDENTIFIER"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
)

// Sentinels for errors.Is comparisons. Any DomainError matches the sentinel
// carrying the same code.
var (
	ErrInvalidColorFormat = &DomainError{Code: ErrCodeInvalidColor}
	ErrInvalidGradient    = &DomainError{Code: ErrCodeInvalidGradient}
	ErrMissingIdentifier  = &DomainError{Code: ErrCodeMissingIdentifier}
	ErrNotFound           = &DomainError{Code: ErrCodeNotFound}
)

// DomainError is a typed error enriched with the offending field, if any.
type DomainError struct {
	Code    ErrorCode
	Message string
	Field   string
	Cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := string(e.Code)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the wrapped cause.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if e == nil || !stdErrors.As(target, &domainErr) || domainErr == nil {
		return false
	}
	return e.Code == domainErr.Code
}

// WithField clones the error with the supplied field path.
func (e *DomainError) WithField(field string) *DomainError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Field = field
	return &clone
}

// NewInvalidColorFormat reports a malformed hex color.
func NewInvalidColorFormat(value string, cause error) error {
	return &DomainError{
		Code:    ErrCodeInvalidColor,
		Message: fmt.Sprintf("malformed hex color %q", value),
		Cause:   cause,
	}
}

// NewInvalidGradient reports a gradient invariant violation on field.
func NewInvalidGradient(field, message string) error {
	return &DomainError{Code: ErrCodeInvalidGradient, Field: field, Message: message}
}

// NewMissingIdentifier reports an upsert without an id.
func NewMissingIdentifier() error {
	return &DomainError{Code: ErrCodeMissingIdentifier, Field: "id", Message: "gradient id is required"}
}

// NewNotFound reports an absent gradient.
func NewNotFound(id string) error {
	return &DomainError{Code: ErrCodeNotFound, Message: fmt.Sprintf("gradient %q not found", id)}
}

// CodeOf returns the code of the first DomainError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var domainErr *DomainError
	if stdErrors.As(err, &domainErr) && domainErr != nil {
		return domainErr.Code, true
	}
	return "", false
}

// ParseError represents a decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
