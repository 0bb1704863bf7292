package errors

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"

	"aura/internal/errors"
)

// Normalize maps a heterogeneous failure cause onto the taxonomy. Errors that
// already carry a classification pass through unchanged; transport and decode
// errors are recognized by type; everything else becomes KindUnknown. The
// original error text stays available to logging via the returned details.
func Normalize(err error) AppError {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if isNetworkError(err) {
		return ErrNetworkUnavailable.WithDetails(err.Error())
	}

	if isDecodeError(err) {
		return ErrDecodeFailed.WithDetails(err.Error())
	}

	return ErrUnknown.WithDetails(err.Error())
}

// KindOf returns the classification of err, KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	normalized := Normalize(err)
	if normalized == nil {
		return KindUnknown
	}

	return normalized.Kind()
}

// FromStatus maps an HTTP status code from the remote service onto the
// taxonomy. The detail string is the raw response body, kept for logs only.
func FromStatus(statusCode int, detail string) *BaseError {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrUnauthorized.WithDetails(detail)
	case statusCode == http.StatusBadRequest ||
		statusCode == http.StatusConflict ||
		statusCode == http.StatusUnprocessableEntity:
		return ErrValidationRejected.WithDetails(detail)
	case statusCode == http.StatusNotFound:
		return ErrRecordNotFound.WithDetails(detail)
	case statusCode >= 500:
		return ErrUnknown.WithDetails(detail)
	default:
		return ErrUnknown.WithDetails(detail)
	}
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}

	var invalidErr *json.InvalidUnmarshalError

	return errors.As(err, &invalidErr)
}
