package core

import "errors"

// Sentinel errors shared across repositories, services, and route handlers.
// Handlers map these to transport status codes; nothing below the route layer
// knows about HTTP.
var (
	// ErrDuplicateUsername indicates a registration with an already-taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned when username/password is wrong.
	// Unknown username and wrong password intentionally share this error so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken indicates an absent or malformed Authorization header.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken covers bad signature, wrong algorithm, and expiry alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAuthUnavailable indicates the credential store could not be reached
	// while resolving a verified token to a live account.
	ErrAuthUnavailable = errors.New("authentication unavailable")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates rejected input before it reached persistence.
	ErrValidation = errors.New("validation failed")
)
