package store

import "errors"

var (
	// ErrEmptyPermissions is returned by mutations that require a non-empty
	// permission set.
	ErrEmptyPermissions = errors.New("permission set must not be empty")

	// ErrRecordNotFound is returned when an operation requires an existing
	// permission record at the scope key and none exists.
	ErrRecordNotFound = errors.New("permission record not found")

	// ErrConcurrentModification is returned when a versioned write loses a
	// race. Callers retry the whole read-modify-write.
	ErrConcurrentModification = errors.New("permission record was modified concurrently")

	// ErrInvitationNotFound is returned when no invitation matches.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrInvalidTransition is returned when an invitation transition leaves
	// a terminal state or the record is no longer in the expected state.
	ErrInvalidTransition = errors.New("invalid invitation transition")
)
