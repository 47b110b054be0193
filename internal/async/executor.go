package async

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Executor runs one logical remote call reliably, masking transient
// timeouts and transport failures behind a bounded retry loop. Every
// attempt executes on the pool with its own deadline taken from the
// policy; between failed attempts the executor sleeps the policy's
// backoff delay. Success on any attempt returns immediately.
type Executor struct {
	pool   *Pool
	policy Policy
	logger *slog.Logger
}

// NewExecutor creates an executor backed by the given pool and policy.
func NewExecutor(pool *Pool, policy Policy, logger *slog.Logger) *Executor {
	if policy == nil {
		policy = NewLinearPolicy(2, 30*time.Second)
	}
	return &Executor{
		pool:   pool,
		policy: policy,
		logger: logger,
	}
}

// Do executes the operation with retries. op names the logical call for
// logging and metrics. When every attempt fails, the returned error is an
// *ExhaustedError whose Err is the last attempt's failure: ErrTimedOut for
// a deadline expiry, or the operation's own error verbatim, so callers can
// still distinguish the underlying failure kind.
//
// Context cancellation and pool shutdown are not retried; they propagate
// immediately.
func (e *Executor) Do(ctx context.Context, op string, fn Operation) (any, error) {
	attempts := e.policy.MaxAttempts()

	var lastErr error
	var budget time.Duration

	for attempt := 0; attempt < attempts; attempt++ {
		timeout := e.policy.AttemptTimeout(attempt)
		budget += timeout

		e.logger.Debug("executing remote call",
			"op", op,
			"attempt", attempt+1,
			"max_attempts", attempts,
			"timeout", timeout)

		value, err := e.pool.RunWithDeadline(ctx, timeout, fn)
		if err == nil {
			requestAttemptsTotal.WithLabelValues(op, outcomeSuccess).Inc()
			if attempt > 0 {
				e.logger.Info("remote call succeeded after retry",
					"op", op,
					"attempt", attempt+1)
			}
			return value, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, ErrPoolClosed) {
			return nil, err
		}

		outcome := outcomeError
		if errors.Is(err, ErrTimedOut) {
			outcome = outcomeTimeout
		}
		requestAttemptsTotal.WithLabelValues(op, outcome).Inc()

		e.logger.Warn("remote call attempt failed",
			"op", op,
			"attempt", attempt+1,
			"max_attempts", attempts,
			"outcome", outcome,
			"error", err)

		// No backoff after the final attempt.
		if attempt == attempts-1 {
			break
		}

		select {
		case <-time.After(e.policy.BackoffDelay(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	requestExhaustedTotal.WithLabelValues(op).Inc()
	e.logger.Error("remote call exhausted all attempts",
		"op", op,
		"attempts", attempts,
		"timeout_budget", budget,
		"error", lastErr)

	return nil, &ExhaustedError{Op: op, Attempts: attempts, Budget: budget, Err: lastErr}
}
