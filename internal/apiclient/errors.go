package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for errors.Is checks at the call site.
var (
	ErrTransport  = errors.New("apiclient: transport failure")
	ErrValidation = errors.New("apiclient: request rejected")
	ErrServer     = errors.New("apiclient: server failure")
	ErrNotFound   = errors.New("apiclient: not found")

	// ErrResponseTooLarge is wrapped by the ServerError of a response body
	// over the client's size limit.
	ErrResponseTooLarge = errors.New("apiclient: response too large")
)

// TransportError means no response was received: the host was unreachable,
// the request timed out or the context was cancelled.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("apiclient: %s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// ValidationError is a 4xx answer. Message is the server's text, unchanged.
type ValidationError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ServerError is a 5xx answer or a 2xx body that could not be decoded.
type ServerError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("apiclient: %s: server failure (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("apiclient: %s: server failure (status %d)", e.Op, e.StatusCode)
}

func (e *ServerError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrServer}
	}
	return []error{ErrServer, e.Err}
}
