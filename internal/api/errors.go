package api

import (
	"errors"
	"fmt"
)

// APIError is an application-level failure: the backend answered 2xx but the
// payload carried an "error" field.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

// TransportError covers network failures, non-2xx statuses and bodies that
// cannot be decoded.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Reason is the short cause shown to users, e.g. "HTTP 500".
func (e *TransportError) Reason() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// AsAPIError reports whether err is (or wraps) an application-level error.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsTransportError reports whether err is (or wraps) a transport failure.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}
