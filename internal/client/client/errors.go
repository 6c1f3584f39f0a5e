package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("promise not found")
	// ErrRejected wraps InvalidArgument and FailedPrecondition replies; the
	// server's message is kept because it is meant for the user.
	ErrRejected = errors.New("rejected")
)
