package assistant

import "errors"

// Common errors returned by the assistant package
var (
	// ErrRunRecoveryExhausted is returned when a poll session has spent
	// its entire recreation budget on failed, expired or cancelled runs.
	ErrRunRecoveryExhausted = errors.New("run recovery budget exhausted")

	// ErrRunPollingTimedOut is returned when a poll session has spent its
	// entire recreation budget on runs that never left an active status
	// within the wall-clock window.
	ErrRunPollingTimedOut = errors.New("run polling timed out")

	// ErrUnexpectedStatus is returned when the remote service reports a
	// run status outside the known enumeration.
	ErrUnexpectedStatus = errors.New("unexpected run status")

	// ErrPollingStopped is returned when the poller's process-wide stop
	// switch ends a session before the run reached a terminal status.
	ErrPollingStopped = errors.New("run polling stopped")
)
