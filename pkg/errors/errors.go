package errors

import (
	"errors"
	"fmt"
)

// Kind classifies client errors into the three failure families the UI
// handles differently: transport failures, non-success API statuses, and
// local validation rejections that never reach the network.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindStatus     Kind = "status"
	KindValidation Kind = "validation"
)

// ClientError represents a client-side error with a kind and an optional
// HTTP status code for KindStatus errors.
type ClientError struct {
	Kind       Kind   `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("[%s %d] %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a failed request (connection refused, timeout,
// malformed response body).
func NewTransportError(message string, err error) *ClientError {
	return &ClientError{Kind: KindTransport, Message: message, Err: err}
}

// NewStatusError records a non-2xx response from the API.
func NewStatusError(statusCode int, message string) *ClientError {
	return &ClientError{Kind: KindStatus, StatusCode: statusCode, Message: message}
}

// NewValidationError rejects input locally, before any network call.
func NewValidationError(message string) *ClientError {
	return &ClientError{Kind: KindValidation, Message: message}
}

// IsKind reports whether err is a ClientError of the given kind.
func IsKind(err error, kind Kind) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	return clientErr.Kind == kind
}
