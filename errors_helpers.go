package amplitude

import (
	"context"
	"errors"
	"net"
)

// AsAPIError extracts an APIError from the error chain.
// Returns the APIError and true if found, nil and false otherwise.
//
// Example:
//
//	if apiErr, ok := amplitude.AsAPIError(err); ok {
//	    log.Printf("rejected with %d: %v", apiErr.StatusCode, apiErr.Body)
//	}
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsValidationError extracts a ValidationError from the error chain.
// Returns the ValidationError and true if found, nil and false otherwise.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}

// IsRetryable returns true if err is a rate limit, a server error or a
// network failure. A canceled context is never retryable. The client never
// retries on its own; this helper exists for callers that own a retry policy.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.IsRetryable()
	}
	if _, ok := AsValidationError(err); ok {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// ErrorCodeOf returns the error code for an error.
// It checks if the error implements CodedError, then falls back to
// inferring the code from the error type.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code()
	}

	// Transport errors all satisfy net.Error, so cancellation is checked first.
	if errors.Is(err, context.Canceled) {
		return ErrCodeCanceled
	}

	switch {
	case errors.Is(err, ErrMissingAPIKey),
		errors.Is(err, ErrMissingSecretKey),
		errors.Is(err, ErrMissingIngestion),
		errors.Is(err, ErrMissingDashboard),
		errors.Is(err, ErrInvalidConfigFile):
		return ErrCodeConfig
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrCodeNetwork
	}
	return ErrCodeInternal
}
