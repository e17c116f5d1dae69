package buddylib

import "errors"

var (
	// ErrNotAuthenticated is returned when no user session is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotEligible is returned when the user's email fails the
	// institutional address policy gate.
	ErrNotEligible = errors.New("email does not match institutional pattern")

	// ErrNoSchedule marks a group without a usable scheduled start/end pair.
	ErrNoSchedule = errors.New("group has no valid scheduled session")

	// ErrDestroyed is returned by operations on a torn-down scheduler.
	ErrDestroyed = errors.New("scheduler is destroyed")
)
