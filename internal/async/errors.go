package async

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the async package
var (
	// ErrTimedOut is returned when a single pooled operation exceeds its
	// per-attempt deadline. The underlying worker invocation is not
	// interrupted; its eventual result is discarded.
	ErrTimedOut = errors.New("operation timed out")

	// ErrPoolClosed is returned when work is submitted after Shutdown.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrQueueFull is returned when the pool's job queue has no room left.
	ErrQueueFull = errors.New("worker pool queue is full")
)

// ExhaustedError reports that the executor used every configured attempt
// without a success. Err holds the final per-attempt failure: either
// ErrTimedOut or the last error returned by the operation itself, verbatim,
// so callers can still branch on the original error kind with errors.Is/As.
type ExhaustedError struct {
	// Op is the logical name of the remote call, for logging.
	Op string

	// Attempts is the number of invocations that were made.
	Attempts int

	// Budget is the cumulative per-attempt timeout that was spent.
	Budget time.Duration

	// Err is the last attempt's failure.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts (%s timeout budget): %v",
		e.Op, e.Attempts, e.Budget, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}
