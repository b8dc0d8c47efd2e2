package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified library error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, ErrIllegalState) matches every illegal-state failure
// regardless of message or details.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Sentinels for errors.Is matching. Never mutate them; use the constructors
// below to build an error carrying details.
var (
	// ErrIllegalState matches every error raised by a second traversal of a
	// single-use sequence.
	ErrIllegalState = New(ErrCodeIllegalState, "sequence is constrained to one traversal")
	// ErrUnsupportedSource matches every error raised when a value cannot back
	// a sequence.
	ErrUnsupportedSource = New(ErrCodeUnsupportedSource, "value cannot be used as a sequence source")
)

// --- Constructors ---

// IllegalState creates a new AppError for a repeated traversal of the named
// single-use sequence kind.
func IllegalState(kind string) *AppError {
	return &AppError{
		Code:    ErrCodeIllegalState,
		Message: fmt.Sprintf("%s can only be traversed once", kind),
		Details: map[string]any{"kind": kind},
	}
}

// UnsupportedSource creates a new AppError for a value of the given Go type
// that cannot be adapted into a sequence.
func UnsupportedSource(goType string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedSource,
		Message: fmt.Sprintf("cannot build a sequence from %s", goType),
		Details: map[string]any{"type": goType},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// InvalidFormat creates a new AppError for an invalid field format.
func InvalidFormat(field, expectedFormat string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		Details: map[string]any{"field": field, "expected_format": expectedFormat},
	}
}

// Internal creates a new AppError for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// --- Lookup ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsIllegalState reports whether err is, or wraps, an illegal-state error.
func IsIllegalState(err error) bool {
	return stderrors.Is(err, ErrIllegalState)
}

// IsUnsupportedSource reports whether err is, or wraps, an unsupported-source
// error.
func IsUnsupportedSource(err error) bool {
	return stderrors.Is(err, ErrUnsupportedSource)
}
