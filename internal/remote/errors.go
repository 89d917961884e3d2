package remote

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist. For profiles
	// this is the first-run signal, not a fault.
	ErrNotFound = errors.New("remote row not found")

	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrUnauthorized indicates the API key was rejected. This is a
	// configuration problem, not a transient failure, and is not retried.
	ErrUnauthorized = errors.New("remote store rejected credentials")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("remote retry attempts exhausted")
)
