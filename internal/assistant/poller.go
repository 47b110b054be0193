package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RunAPI captures the subset of the client the poller needs.
type RunAPI interface {
	RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error)
	CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error)
	CancelRun(ctx context.Context, threadID, runID string) (*Run, error)
}

// PollConfig holds the recovery policy of the run polling state machine.
// Its budget is independent from the request executor's per-call retries:
// the executor masks transport failures of a single call, while this
// config bounds how often a whole run may be recreated.
type PollConfig struct {
	// MaxRunRetries is the recreation budget of one poll session, shared
	// between failed-status recovery and wall-clock recovery.
	MaxRunRetries int

	// RunTimeout is the wall-clock window a run gets to leave an active
	// status. It restarts on every recreation.
	RunTimeout time.Duration

	// PollInterval is the sleep between status reads.
	PollInterval time.Duration
}

// DefaultPollConfig returns a PollConfig with reasonable defaults.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxRunRetries: 2,
		RunTimeout:    30 * time.Second,
		PollInterval:  time.Second,
	}
}

// RunPoller drives previously created runs to a terminal, non-recoverable
// status. Every remote call it issues goes through the client, and with it
// through the resilient request executor.
//
// Each Await call takes its own context so individual sessions can be
// cancelled; Stop additionally acts as a process-wide switch that ends
// every active session within one poll iteration.
type RunPoller struct {
	api    RunAPI
	cfg    PollConfig
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewRunPoller creates a run poller with the given recovery policy.
func NewRunPoller(api RunAPI, cfg PollConfig, logger *slog.Logger) *RunPoller {
	if cfg.MaxRunRetries <= 0 {
		cfg.MaxRunRetries = 2
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &RunPoller{
		api:    api,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Stop ends all active and future poll sessions. It is called once at
// teardown and is safe to call repeatedly.
func (p *RunPoller) Stop() {
	p.cancel()
}

// Await polls the run identified by handle until it reaches a terminal,
// non-recoverable status, recreating it when it fails or gets stuck.
//
// Runs that end up failed, expired or cancelled are recreated, as are runs
// that stay active past RunTimeout (after a best-effort cancel). Both
// triggers draw on the one shared budget of MaxRunRetries recreations; the
// wall-clock window restarts whenever a run is recreated, the budget never
// does. On terminal success the optional onComplete callback is invoked
// once with the final run, which is then returned. handle is updated in
// place as the session progresses.
func (p *RunPoller) Await(ctx context.Context, handle *RunHandle, onComplete func(*Run)) (*Run, error) {
	logger := p.logger.With(
		"thread_id", handle.ThreadID,
		"assistant_id", handle.AssistantID,
	)

	start := time.Now()
	retryCount := 0

	for {
		if err := p.checkStopped(ctx); err != nil {
			runPollOutcomesTotal.WithLabelValues("stopped").Inc()
			return nil, err
		}

		run, err := p.api.RetrieveRun(ctx, handle.ThreadID, handle.RunID)
		if err != nil {
			logger.Error("failed to retrieve run status", "run_id", handle.RunID, "error", err)
			return nil, err
		}
		handle.Status = run.Status

		switch {
		case run.Status.IsRecoverable():
			logger.Error("run ended in recoverable status",
				"run_id", handle.RunID,
				"status", run.Status)

			if retryCount >= p.cfg.MaxRunRetries {
				runPollOutcomesTotal.WithLabelValues("recovery_exhausted").Inc()
				return nil, fmt.Errorf("%w: run still %s after %d recreations",
					ErrRunRecoveryExhausted, run.Status, retryCount)
			}
			retryCount++
			runRecreationsTotal.WithLabelValues(triggerStatus).Inc()
			logger.Info("recreating failed run",
				"attempt", retryCount,
				"max_attempts", p.cfg.MaxRunRetries)

			if err := p.recreate(ctx, handle); err != nil {
				return nil, err
			}
			start = time.Now()

		case run.Status.IsActive():
			if elapsed := time.Since(start); elapsed > p.cfg.RunTimeout {
				if retryCount >= p.cfg.MaxRunRetries {
					runPollOutcomesTotal.WithLabelValues("polling_timeout").Inc()
					return nil, fmt.Errorf("%w: no terminal status within %s across %d recreations",
						ErrRunPollingTimedOut, p.cfg.RunTimeout, retryCount)
				}
				retryCount++
				runRecreationsTotal.WithLabelValues(triggerTimeout).Inc()
				logger.Warn("run stuck past timeout, cancelling and recreating",
					"run_id", handle.RunID,
					"elapsed", elapsed,
					"attempt", retryCount,
					"max_attempts", p.cfg.MaxRunRetries)

				// Best-effort cancel of the stuck run; its outcome is
				// irrelevant to the session.
				if _, err := p.api.CancelRun(ctx, handle.ThreadID, handle.RunID); err != nil {
					logger.Debug("cancel of stuck run failed", "run_id", handle.RunID, "error", err)
				}

				if err := p.recreate(ctx, handle); err != nil {
					return nil, err
				}
				start = time.Now()
				continue
			}

			if err := p.sleep(ctx); err != nil {
				runPollOutcomesTotal.WithLabelValues("stopped").Inc()
				return nil, err
			}

		case run.Status == StatusUnknown:
			runPollOutcomesTotal.WithLabelValues("unexpected_status").Inc()
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedStatus, run.RawStatus)

		default:
			// Terminal success: completed or requires_action.
			runPollOutcomesTotal.WithLabelValues(string(run.Status)).Inc()
			logger.Info("run reached terminal status",
				"run_id", run.ID,
				"status", run.Status,
				"recreations", retryCount)
			if onComplete != nil {
				onComplete(run)
			}
			return run, nil
		}
	}
}

// recreate starts a replacement run on the same thread and assistant and
// points the handle at it.
func (p *RunPoller) recreate(ctx context.Context, handle *RunHandle) error {
	run, err := p.api.CreateRun(ctx, handle.ThreadID, handle.AssistantID)
	if err != nil {
		p.logger.Error("failed to recreate run",
			"thread_id", handle.ThreadID,
			"error", err)
		return err
	}
	handle.RunID = run.ID
	handle.Status = run.Status
	return nil
}

// checkStopped reports session or process-wide cancellation without blocking.
func (p *RunPoller) checkStopped(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPollingStopped
	default:
		return nil
	}
}

// sleep waits one poll interval, returning early on cancellation.
func (p *RunPoller) sleep(ctx context.Context) error {
	timer := time.NewTimer(p.cfg.PollInterval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPollingStopped
	}
}
