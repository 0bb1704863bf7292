// Package errors defines the application error taxonomy. Every failure
// surfaced by the auth controller or a repository is classified into one of a
// small set of kinds so that callers can react uniformly without depending on
// transport-level error types.
package errors

import (
	"aura/internal/errors"
)

// Kind classifies a failure cause.
type Kind string

const (
	// KindNetworkUnavailable covers connectivity failures: DNS, refused
	// connections, timeouts.
	KindNetworkUnavailable Kind = "network_unavailable"
	// KindUnauthorized covers expired or invalid sessions.
	KindUnauthorized Kind = "unauthorized"
	// KindValidationRejected covers malformed payloads and constraint
	// violations reported by the backend.
	KindValidationRejected Kind = "validation_rejected"
	// KindDecodeFailed covers response bodies whose shape did not match the
	// expected wire contract.
	KindDecodeFailed Kind = "decode_failed"
	// KindUnknown covers everything else.
	KindUnknown Kind = "unknown"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	Kind() Kind        // Failure classification
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the failure classification.
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Connectivity errors
	ErrNetworkUnavailable = NewBaseError(
		KindNetworkUnavailable,
		"NETWORK_UNAVAILABLE",
		"could not reach the server, check your connection",
		"",
	)

	// Session errors
	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		"UNAUTHORIZED",
		"your session is invalid or has expired, please sign in again",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"incorrect email or password",
		"",
	)

	ErrNoSession = NewBaseError(
		KindUnauthorized,
		"NO_SESSION",
		"not signed in",
		"",
	)

	// Validation errors
	ErrValidationRejected = NewBaseError(
		KindValidationRejected,
		"VALIDATION_REJECTED",
		"the server rejected the request payload",
		"",
	)

	// Decode errors
	ErrDecodeFailed = NewBaseError(
		KindDecodeFailed,
		"DECODE_FAILED",
		"the server returned an unexpected response",
		"",
	)

	// Record errors
	ErrRecordNotFound = NewBaseError(
		KindUnknown,
		"RECORD_NOT_FOUND",
		"no matching record was found",
		"",
	)

	// General errors
	ErrUnknown = NewBaseError(
		KindUnknown,
		"UNKNOWN",
		"something went wrong, please try again",
		"",
	)

	// Controller errors
	ErrOperationInFlight = NewBaseError(
		KindUnknown,
		"OPERATION_IN_FLIGHT",
		"another sign-in attempt is already in progress",
		"",
	)
)
