package amplitude

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a category of error for logging and handling.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Missing or invalid client configuration
	ErrCodeValidation ErrorCode = "VALIDATION" // Missing call parameters
	ErrCodeAPI        ErrorCode = "API"        // Remote rejected the request
	ErrCodeAuth       ErrorCode = "AUTH"       // Remote rejected the credentials
	ErrCodeRateLimit  ErrorCode = "RATE_LIMIT" // Remote throttled the request
	ErrCodeNetwork    ErrorCode = "NETWORK"    // No response received
	ErrCodeCanceled   ErrorCode = "CANCELED"   // Caller canceled the context
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Encoding or decoding failures
)

// Sentinel errors for configuration problems. They are detected locally and
// returned before any request is sent.
var (
	ErrMissingAPIKey     = errors.New("amplitude: no API key provided")
	ErrMissingSecretKey  = errors.New("amplitude: secret key is required")
	ErrMissingIngestion  = errors.New("amplitude: ingestion URL is required")
	ErrMissingDashboard  = errors.New("amplitude: dashboard URL is required")
	ErrInvalidConfigFile = errors.New("amplitude: invalid config file")
	ErrNilConfig         = errors.New("amplitude: config cannot be nil")
)

// Sentinel APIError values for use with errors.Is().
// These match on status code only.
var (
	ErrBadRequest   = &APIError{StatusCode: http.StatusBadRequest}
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &APIError{StatusCode: http.StatusForbidden}
	ErrNotFound     = &APIError{StatusCode: http.StatusNotFound}
	ErrTooLarge     = &APIError{StatusCode: http.StatusRequestEntityTooLarge}
	ErrRateLimited  = &APIError{StatusCode: http.StatusTooManyRequests}
)

// APIError is returned when Amplitude replied with a non-2xx status.
// Errors from the network layer, where no response arrived, are never
// converted to an APIError.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Status is the status text, e.g. "Internal Server Error".
	Status string

	// Body is the decoded response body: the JSON value when the body is
	// valid JSON, the body text otherwise, nil when empty.
	Body any

	// RawBody holds the undecoded response bytes.
	RawBody []byte
}

// newAPIError builds an APIError from a response status and body.
func newAPIError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       decodeBody(body),
		RawBody:    body,
	}
}

// decodeBody decodes a JSON body, falling back to its text.
func decodeBody(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return trimmed
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := e.Status
	if status == "" {
		status = http.StatusText(e.StatusCode)
	}
	if msg := e.message(); msg != "" {
		return fmt.Sprintf("amplitude: API error (status %d %s): %s", e.StatusCode, status, msg)
	}
	return fmt.Sprintf("amplitude: API error (status %d %s)", e.StatusCode, status)
}

// message extracts a human readable message from the body if there is one.
func (e *APIError) message() string {
	switch b := e.Body.(type) {
	case string:
		return b
	case map[string]any:
		for _, key := range []string{"error", "message"} {
			if s, ok := b[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Is implements error comparison for errors.Is().
// It matches on status code, allowing comparisons like:
//
//	if errors.Is(err, amplitude.ErrRateLimited) { ... }
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Decode unmarshals the raw error body into v.
func (e *APIError) Decode(v any) error {
	return json.Unmarshal(e.RawBody, v)
}

// IsUnauthorized returns true for 401 responses.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true for 403 responses.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsRateLimited returns true for 429 responses.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true for 5xx responses.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable reports whether a caller could reasonably retry the request.
// The client itself never retries.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}

// Code returns the error code for the API error.
func (e *APIError) Code() ErrorCode {
	switch {
	case e.IsUnauthorized(), e.IsForbidden():
		return ErrCodeAuth
	case e.IsRateLimited():
		return ErrCodeRateLimit
	default:
		return ErrCodeAPI
	}
}

// ValidationError reports a missing or invalid parameter detected before a
// request was built.
type ValidationError struct {
	Op      string // Client method that rejected the call
	Field   string
	Message string
	Err     error // Underlying sentinel, if any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("amplitude: %s: %s %s", e.Op, e.Field, e.Message)
	}
	return fmt.Sprintf("amplitude: %s %s", e.Field, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Code returns ErrCodeConfig for missing credentials and ErrCodeValidation
// for missing call parameters.
func (e *ValidationError) Code() ErrorCode {
	if errors.Is(e.Err, ErrMissingSecretKey) || errors.Is(e.Err, ErrMissingAPIKey) {
		return ErrCodeConfig
	}
	return ErrCodeValidation
}

// IsRetryable returns false; the call has to be fixed, not retried.
func (e *ValidationError) IsRetryable() bool {
	return false
}

// newValidationError creates a validation error for op.
func newValidationError(op, field, message string) *ValidationError {
	return &ValidationError{Op: op, Field: field, Message: message}
}

// missingSecretKey is returned by read endpoints when no secret key is set.
func missingSecretKey(op string) *ValidationError {
	return &ValidationError{
		Op:      op,
		Field:   "secretKey",
		Message: "must be set to use the " + op + " method",
		Err:     ErrMissingSecretKey,
	}
}

// CodedError is implemented by errors that carry an ErrorCode.
type CodedError interface {
	error
	Code() ErrorCode
}

var (
	_ CodedError = (*APIError)(nil)
	_ CodedError = (*ValidationError)(nil)
)
