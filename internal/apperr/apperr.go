// Package apperr defines the error taxonomy shared by the service and HTTP layers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the HTTP layer can pick a status code.
type Kind int

const (
	KindInternal Kind = iota
	// KindConfiguration means a required setting (usually the provider credential) is missing.
	KindConfiguration
	// KindValidation means the caller sent malformed input.
	KindValidation
	// KindNotFound means a lookup key is unknown.
	KindNotFound
	// KindUnauthorized means the shared-secret header was missing or wrong.
	KindUnauthorized
	// KindNetwork means the provider could not be reached or did not answer.
	KindNetwork
	// KindProvider means the provider answered with an error.
	KindProvider
	// KindFetch covers any other failure while fetching search results.
	KindFetch
	// KindDetailFetch covers every failure while fetching place details.
	KindDetailFetch
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindNetwork:
		return "network"
	case KindProvider:
		return "provider"
	case KindFetch:
		return "fetch"
	case KindDetailFetch:
		return "detail_fetch"
	default:
		return "internal"
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// Code carries the provider status string (e.g. REQUEST_DENIED) when known.
	Code string
	// Status carries the upstream HTTP status when the provider returned one.
	Status int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the status returned to callers.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Configuration(message string) *Error { return New(KindConfiguration, message) }

func Validation(message string) *Error { return New(KindValidation, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Network reports that the provider could not be reached.
func Network(message string, err error) *Error {
	return Wrap(KindNetwork, message, err)
}

// Provider reports an error answer from the provider. code is the provider
// status string and status the upstream HTTP status (0 when the HTTP call succeeded).
func Provider(code string, status int, message string) *Error {
	return &Error{Kind: KindProvider, Code: code, Status: status, Message: message}
}

// Fetch wraps an unexpected failure while fetching search results.
func Fetch(err error) *Error {
	return Wrap(KindFetch, fmt.Sprintf("Failed to fetch places data: %v", err), err)
}

// DetailFetch wraps any failure while fetching place details.
func DetailFetch(err error) *Error {
	return Wrap(KindDetailFetch, "Failed to fetch place details", err)
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus returns the status for err, defaulting to 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
