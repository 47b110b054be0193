package async

import "time"

// Policy decides how many attempts a remote call gets, how long each
// attempt may take, and how long to wait between attempts. Keeping the
// arithmetic behind an interface lets the retry shape be swapped (or
// faked in tests) without touching the executor's control flow.
type Policy interface {
	// MaxAttempts returns the total number of attempts, including the
	// first one. A value of 1 means no retries.
	MaxAttempts() int

	// AttemptTimeout returns the deadline for the given zero-based
	// attempt index.
	AttemptTimeout(attempt int) time.Duration

	// BackoffDelay returns how long to sleep after the given zero-based
	// attempt index fails, before the next attempt starts.
	BackoffDelay(attempt int) time.Duration
}

// LinearPolicy grows both the per-attempt timeout and the backoff delay
// linearly with the attempt index: attempt i runs with deadline
// BaseTimeout*(i+1) and is followed by a BackoffUnit*(i+1) sleep.
type LinearPolicy struct {
	Attempts    int
	BaseTimeout time.Duration
	BackoffUnit time.Duration
}

// NewLinearPolicy returns a LinearPolicy with the standard one-second
// backoff unit.
func NewLinearPolicy(attempts int, baseTimeout time.Duration) LinearPolicy {
	return LinearPolicy{
		Attempts:    attempts,
		BaseTimeout: baseTimeout,
		BackoffUnit: time.Second,
	}
}

func (p LinearPolicy) MaxAttempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p LinearPolicy) AttemptTimeout(attempt int) time.Duration {
	return p.BaseTimeout * time.Duration(attempt+1)
}

func (p LinearPolicy) BackoffDelay(attempt int) time.Duration {
	return p.BackoffUnit * time.Duration(attempt+1)
}
