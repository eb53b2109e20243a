package entities

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrMalformedResponse = errors.New("malformed completion response")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrRequestPending    = errors.New("a request is already in flight")
	ErrLogClosed         = errors.New("session log is closed")
)

// GenericServiceMessage is used when the service gives no reason for a failure.
const GenericServiceMessage = "error querying the completion service"

// NetworkError means no usable response reached us.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError means the completion service rejected the request or
// answered with something we could not use.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error returns only the message so it can be shown to the user as is.
func (e *ServiceError) Error() string {
	if e.Message == "" {
		return GenericServiceMessage
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewMalformedResponseError reports a success response missing expected fields.
func NewMalformedResponseError(statusCode int, cause error) *ServiceError {
	err := ErrMalformedResponse
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedResponse, cause)
	}
	return &ServiceError{StatusCode: statusCode, Message: GenericServiceMessage, Err: err}
}
