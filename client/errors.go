// Package client is the state layer the ClearFlow front ends build on: a
// REST API client plus the list-pagination and session controllers that
// own query state, stale-response discard and auth gating.
package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call. Transport problems and bad
// responses are normalized into one shape before they reach controllers.
type ErrorKind int

const (
	// KindNetwork means no usable response reached us: connection refused,
	// DNS failure, timeout. The server may never have seen the request.
	KindNetwork ErrorKind = iota
	// KindInvalid covers 400-class validation failures, including the
	// invalid-credentials response from login.
	KindInvalid
	// KindUnauthorized is an HTTP 401: the token is missing, expired or
	// revoked.
	KindUnauthorized
	// KindForbidden is an HTTP 403.
	KindForbidden
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindServer covers 5xx responses.
	KindServer
	// KindMalformed means the response arrived but its shape was not the
	// one the endpoint promises (e.g. a page envelope missing content).
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// APIError is the single error shape surfaced by the client.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

// IsUnauthorized reports whether err is an APIError with KindUnauthorized.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindInvalid
	}
}
