package transport

import (
	"errors"
	"fmt"
)

// Class categorizes a failed API call.
type Class string

const (
	// ClassConfig marks construction-time configuration failures,
	// such as missing credentials. Never network-related.
	ClassConfig Class = "config"

	// ClassAuth marks rejected credentials or an invalid/expired token
	// (401 on a call, 403 on the token exchange).
	ClassAuth Class = "auth"

	// ClassValidation marks a request rejected as malformed (400).
	ClassValidation Class = "validation"

	// ClassNotFound marks a missing resource (404).
	ClassNotFound Class = "not_found"

	// ClassServer marks remote failures (>=500). These are retried.
	ClassServer Class = "server"

	// ClassNetwork marks transport-level failures before any response
	// was received (DNS, connect, timeout).
	ClassNetwork Class = "network"

	// ClassContract marks a response whose JSON shape does not match
	// what the call site declared. Signals an API-version mismatch.
	ClassContract Class = "contract"

	// ClassAPI marks any other non-2xx response.
	ClassAPI Class = "api"
)

// ErrClosed is returned when a Connection is used after Close.
var ErrClosed = errors.New("connection closed")

// Error is the classified error surfaced for every failed API call.
// StatusCode and Body are set for API-originated errors, Err for
// network-originated ones. Errors are immutable after creation.
type Error struct {
	Class      Class
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("flanks %s error: %s: %v", e.Class, e.Message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("flanks %s error (status %d): %s", e.Class, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("flanks %s error: %s", e.Class, e.Message)
	}
}

// Unwrap supports errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassOf returns the classification of err, or "" for unclassified errors.
func ClassOf(err error) Class {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Class
	}
	return ""
}

func newConfigError(format string, args ...any) *Error {
	return &Error{Class: ClassConfig, Message: fmt.Sprintf(format, args...)}
}

func newNetworkError(message string, cause error) *Error {
	return &Error{Class: ClassNetwork, Message: message, Err: cause}
}

func newContractError(format string, args ...any) *Error {
	return &Error{Class: ClassContract, Message: fmt.Sprintf(format, args...)}
}

// classify maps a completed non-2xx HTTP response to a classified error.
// The raw body is preserved so callers can log it without re-parsing.
func classify(statusCode int, body []byte) *Error {
	switch {
	case statusCode == 400:
		return &Error{Class: ClassValidation, StatusCode: statusCode, Message: "validation error", Body: body}
	case statusCode == 401:
		return &Error{Class: ClassAuth, StatusCode: statusCode, Message: "invalid or expired token", Body: body}
	case statusCode == 404:
		return &Error{Class: ClassNotFound, StatusCode: statusCode, Message: "resource not found", Body: body}
	case statusCode >= 500:
		return &Error{Class: ClassServer, StatusCode: statusCode, Message: "server error", Body: body}
	default:
		return &Error{Class: ClassAPI, StatusCode: statusCode, Message: "unexpected status", Body: body}
	}
}
