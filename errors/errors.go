package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an error with a code, a retryable flag and optional details.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by code, so errors.Is(err, &AppError{Code: c})
// works as a code check.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithCause sets the underlying cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError whose retryable flag follows its code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Retryable: IsRetryableCode(code)}
}

// Unavailable reports a dependency that cannot be reached right now.
func Unavailable(service string) *AppError {
	return New(ErrCodeUnavailable, fmt.Sprintf("%s is temporarily unavailable", service)).
		WithDetail("service", service)
}

// Timeout reports an operation that did not finish in time.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("%s timed out", operation)).
		WithDetail("operation", operation)
}

// ExternalService reports a failure returned by another service.
func ExternalService(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("%s returned an error", service)).
		WithDetail("service", service).
		WithCause(cause)
}

// Cancelled reports an operation abandoned by its owner.
func Cancelled(operation string) *AppError {
	return New(ErrCodeCancelled, fmt.Sprintf("%s was cancelled", operation)).
		WithDetail("operation", operation)
}

// NotFound reports a missing resource.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// InvalidInput reports a rejected argument.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, fmt.Sprintf("invalid input: %s", reason))
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Conflict reports a state conflict.
func Conflict(reason string) *AppError {
	return New(ErrCodeConflict, reason)
}

// Exhausted reports that every retry attempt failed. Cause is the last
// failure.
func Exhausted(operation string, attempts int, cause error) *AppError {
	return New(ErrCodeExhausted, fmt.Sprintf("%s failed after %d attempts", operation, attempts)).
		WithDetail("operation", operation).
		WithDetail("attempts", attempts).
		WithCause(cause)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "unexpected error").WithCause(cause)
}

// As finds the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first *AppError in err's chain, or
// ErrCodeInternal for any other non-nil error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether err is an *AppError marked retryable.
func IsRetryable(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Retryable
}

// Is, Unwrap and Join mirror the standard library so callers need a single
// errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }
func Unwrap(err error) error    { return stderrors.Unwrap(err) }
func Join(errs ...error) error  { return stderrors.Join(errs...) }
