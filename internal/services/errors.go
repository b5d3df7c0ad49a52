package services

import "errors"

// Sentinel errors for the three failure classes every operation can surface.
// Services wrap these with fmt.Errorf("%w: ...") to carry a human-readable
// reason; handlers map them to HTTP codes with errors.Is.
var (
	// ErrValidation -> 400. Missing or malformed input.
	ErrValidation = errors.New("invalid input")

	// ErrNotAuthorized -> 403. Role or permission mismatch. Never silently
	// swallowed: the message is returned to the caller.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNotFound -> 404. A referenced entity does not exist (or does not
	// exist for this caller, which is deliberately indistinguishable).
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials -> 401. Kept generic so login failures do not
	// reveal whether the email is registered.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
