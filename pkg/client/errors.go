package client

import (
	"errors"
	"fmt"
)

var (
	// ErrEndpointRequired is returned by New when no endpoint is configured.
	ErrEndpointRequired = errors.New("client: endpoint is required")
	// ErrInvalidEndpoint is returned by New for endpoints that are not
	// absolute http(s) URLs.
	ErrInvalidEndpoint = errors.New("client: endpoint must be an absolute http(s) url")
)

// SubmissionError reports a non-2xx answer from the registration endpoint.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("client: registration rejected with status %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the message the endpoint sent back.
func (e *SubmissionError) UserMessage() string {
	return e.Message
}

// RequestError reports a request that never produced a response: DNS,
// connection, timeout or cancellation failures.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "client: " + e.UserMessage()
}

// UserMessage describes the failure for display next to the form.
func (e *RequestError) UserMessage() string {
	return fmt.Sprintf("registration request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
