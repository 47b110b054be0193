package assistant

// RunStatus is the closed enumeration of remote run states. Statuses the
// remote service may introduce later map to StatusUnknown at the boundary
// instead of being silently misclassified.
type RunStatus string

// Possible run status values
const (
	StatusQueued         RunStatus = "queued"
	StatusInProgress     RunStatus = "in_progress"
	StatusCompleted      RunStatus = "completed"
	StatusRequiresAction RunStatus = "requires_action"
	StatusFailed         RunStatus = "failed"
	StatusExpired        RunStatus = "expired"
	StatusCancelled      RunStatus = "cancelled"
	StatusUnknown        RunStatus = "unknown"
)

// ParseRunStatus maps a raw status string from the remote service into the
// closed enumeration.
func ParseRunStatus(raw string) RunStatus {
	switch RunStatus(raw) {
	case StatusQueued, StatusInProgress, StatusCompleted,
		StatusRequiresAction, StatusFailed, StatusExpired, StatusCancelled:
		return RunStatus(raw)
	default:
		return StatusUnknown
	}
}

// IsActive reports whether the run is still being worked on and should be
// polled again.
func (s RunStatus) IsActive() bool {
	return s == StatusQueued || s == StatusInProgress
}

// IsRecoverable reports whether the run ended in a status that is eligible
// for automatic recreation.
func (s RunStatus) IsRecoverable() bool {
	return s == StatusFailed || s == StatusExpired || s == StatusCancelled
}

// IsTerminal reports whether polling stops at this status.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRequiresAction, StatusFailed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}
