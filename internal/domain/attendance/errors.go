package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrTypeNotFound   = errors.New("attendance type not found")

	// ErrPersistenceFailure wraps remote read/write errors. Always
	// retryable at the caller's discretion, never swallowed.
	ErrPersistenceFailure = errors.New("persistence failure")

	// Gesture state errors
	ErrGestureInFlight = errors.New("a marking gesture is already in flight")
	ErrNoGesture       = errors.New("no marking gesture in progress")
)
