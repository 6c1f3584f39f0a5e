// Package common defines shared constants and sentinel errors used across
// client and server layers of PromiseKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors: bad deadline text, empty required field, unknown category.
	ErrorValidation = errors.New("validation error")

	// Lifecycle errors: the requested status change is not allowed from the
	// record's current status.
	ErrorInvalidTransition = errors.New("invalid status transition")

	// Collaborator errors. These never cross the service boundary as Go
	// errors; they are rendered into in-band "Error: ..." replies.
	ErrorCollaborator = errors.New("collaborator error")
)
