package core

import "errors"

// Error taxonomy shared by every simulation package.
// Packages wrap these with context so callers can match with errors.Is.
var (
	// ErrInvalidArgument is returned for nil entities, blank scene names,
	// nil scenes and non-finite or negative frame deltas.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when a lifecycle operation runs in the
	// wrong state, e.g. updating a scene before it was initialized.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound is returned when activating an unregistered scene name.
	ErrNotFound = errors.New("not found")
)
