package usecase

import "errors"

// Sentinels returned by every service. The HTTP layer maps each one to a
// single status code, so wrap them with %w and never compare messages.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// Session and admin checks.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// A user already has picks stored for the week.
	ErrConflict = errors.New("conflict")
	// The week's lock time, Thursday 20:00 league time of the kickoff week,
	// has passed.
	ErrLocked = errors.New("picks are locked")

	// The schedule feed could not be reached or is not configured. Storage
	// failures are returned unwrapped and surface as internal errors.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
