package search

import (
	"errors"
	"fmt"
)

// ErrorKind names a class of search failure
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindHTTPStatus ErrorKind = "http_status"
	KindTransport  ErrorKind = "transport"
	KindParse      ErrorKind = "parse"
	KindUnknown    ErrorKind = "unknown"
)

// ErrEmptyQuery is returned when the query is empty after trimming.
// No request is issued for it.
var ErrEmptyQuery = errors.New("search query is empty")

// Error is implemented by every failure the client returns after a request was attempted
type Error interface {
	error
	Kind() ErrorKind
}

// HTTPStatusError reports a response whose status is outside the 2xx range
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string // leading part of the response body, for diagnostics
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("search http error: status %d", e.StatusCode)
}

func (e *HTTPStatusError) Kind() ErrorKind { return KindHTTPStatus }

// TransportError reports a request that could not complete
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("search request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() ErrorKind { return KindTransport }

// ParseError reports a response body that could not be decoded. Mismatch is
// set when the body is valid JSON whose fields have the wrong types.
type ParseError struct {
	Err      error
	Mismatch bool
}

func (e *ParseError) Error() string {
	if e.Mismatch {
		return fmt.Sprintf("search response does not match the result contract: %v", e.Err)
	}
	return fmt.Sprintf("search response is not valid json: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Kind() ErrorKind { return KindParse }

// KindOf classifies err. Wrapped errors are inspected.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyQuery) {
		return KindValidation
	}
	var se Error
	if errors.As(err, &se) {
		return se.Kind()
	}
	return KindUnknown
}
