package errors

import "errors"

// This package defines the sentinel errors shared across the application.
// Services return these (usually wrapped with fmt.Errorf and %w) instead of
// HTTP status codes, and the API layer maps them to responses with errors.Is().

var (
	// ErrNotFound signifies that a requested resource could not be located,
	// e.g. a session id that is not in the collection. Maps to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation,
	// e.g. a chat request without a message. Maps to 400.
	ErrValidation = errors.New("validation failed")

	// ErrConfig signifies that a required upstream credential is missing, so
	// the feature that needs it is degraded. Maps to 500 with an explicit
	// configuration message rather than a generic one.
	ErrConfig = errors.New("missing configuration")

	// ErrTimeout signifies that a bounded wait on an upstream job was
	// exhausted, currently only the avatar-video poll loop.
	ErrTimeout = errors.New("operation timed out")

	// ErrInternal is the generic unexpected-server-error sentinel, used to
	// avoid leaking implementation details to the client. Maps to 500.
	ErrInternal = errors.New("internal server error")
)
