// Package problem holds the error outcomes of the bottles service. Every
// APIError carries the HTTP status it maps to.
package problem

import (
	"errors"
	"net/http"
)

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// APIError implements error and doubles as an RFC 7807 problem document on
// the documented surface (/health).
type APIError struct {
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail,omitempty"`
	InvalidParams []InvalidParam `json:"invalidParams,omitempty"`

	// Allow lists the permitted methods of a 405.
	Allow string `json:"-"`

	cause error
}

func (e APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

func (e APIError) Unwrap() error { return e.cause }

func NewBadRequest(detail string, params ...InvalidParam) APIError {
	return APIError{
		Title:         "Bad Request",
		Status:        http.StatusBadRequest,
		Detail:        detail,
		InvalidParams: params,
	}
}

func NewNotFound(detail string) APIError {
	return APIError{
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: detail,
	}
}

func NewMethodNotAllowed(allow string) APIError {
	return APIError{
		Title:  "Method Not Allowed",
		Status: http.StatusMethodNotAllowed,
		Allow:  allow,
	}
}

// NewUnavailable reports a server side failure. The service answers those
// with 503, clients depend on it.
func NewUnavailable(cause error) APIError {
	e := APIError{
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
		cause:  cause,
	}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// WithCause keeps err reachable through errors.Is / errors.As.
func (e APIError) WithCause(err error) APIError {
	e.cause = err
	return e
}

// From returns the APIError inside err, or a 503 wrapping err.
func From(err error) APIError {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewUnavailable(err)
}
