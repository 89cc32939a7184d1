package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of backend error
type ErrorType string

const (
	// ErrTypeNetwork indicates the backend could not be reached
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request deadline expired
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeStatus indicates a non-200 response
	ErrTypeStatus ErrorType = "status"

	// ErrTypeDecode indicates a malformed response body
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeCircuitOpen indicates the circuit breaker rejected the call
	ErrTypeCircuitOpen ErrorType = "circuit_open"

	// ErrTypeConfiguration indicates invalid backend settings
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeInternal indicates a client-side failure
	ErrTypeInternal ErrorType = "internal"
)

// Error is a failed backend call
type Error struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// Endpoint is the API path that failed
	Endpoint string `json:"endpoint,omitempty"`

	// StatusCode for HTTP-related errors
	StatusCode int `json:"status_code,omitempty"`

	// RequestID is the X-Request-ID sent with the call
	RequestID string `json:"request_id,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`

	// Retryable indicates if the operation can be retried
	Retryable bool `json:"retryable"`
}

// Error implements the error interface
func (e *Error) Error() string {
	var parts []string

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *Error) Is(target error) bool {
	if be, ok := target.(*Error); ok {
		return e.Type == be.Type
	}
	return false
}

// NewError creates a new backend error
func NewError(errType ErrorType, endpoint, message string) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Endpoint:  endpoint,
		Retryable: isRetryableType(errType),
	}
}

// NewErrorWithCause creates a backend error with an underlying cause
func NewErrorWithCause(errType ErrorType, endpoint, message string, cause error) *Error {
	e := NewError(errType, endpoint, message)
	e.Cause = cause
	return e
}

// NewStatusError creates an error for a non-200 response. Server errors and
// 429 are retryable, other client errors are not.
func NewStatusError(endpoint string, status int, detail string) *Error {
	if detail == "" {
		detail = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{
		Type:       ErrTypeStatus,
		Message:    detail,
		Endpoint:   endpoint,
		StatusCode: status,
		Retryable:  status >= 500 || status == 429,
	}
}

func isRetryableType(errType ErrorType) bool {
	switch errType {
	case ErrTypeNetwork, ErrTypeTimeout:
		return true
	default:
		return false
	}
}

// IsRetryable checks if an error is a retryable backend error
func IsRetryable(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Retryable
}

// IsCircuitOpen checks if the circuit breaker rejected the call
func IsCircuitOpen(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Type == ErrTypeCircuitOpen
}

// IsStatus checks if the backend answered with the given HTTP status
func IsStatus(err error, status int) bool {
	var be *Error
	return errors.As(err, &be) && be.Type == ErrTypeStatus && be.StatusCode == status
}
