package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Operation is one blocking unit of work, typically a synchronous remote
// API call. Operations submitted to the pool must be safe to abandon: a
// caller that stops waiting does not interrupt the invocation, it keeps
// running on its worker until it returns.
type Operation func() (any, error)

// result carries an operation's outcome from a worker to the awaiter.
type result struct {
	value any
	err   error
}

// Pending is the awaitable handle for a submitted operation.
type Pending struct {
	done chan result
}

// Wait blocks until the operation finishes or the context is done.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case res := <-p.done:
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// job pairs an operation with the channel its result is delivered on.
type job struct {
	op  Operation
	out chan result
}

// PoolConfig holds configuration options for the worker pool.
type PoolConfig struct {
	// WorkerCount determines how many operations may execute concurrently.
	// If zero or negative, defaults to 4.
	WorkerCount int

	// QueueSize determines the buffer size for queued submissions.
	// If zero or negative, defaults to 64.
	QueueSize int
}

// DefaultPoolConfig returns a PoolConfig with reasonable defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		WorkerCount: 4,
		QueueSize:   64,
	}
}

// Pool runs blocking operations on a fixed set of worker goroutines so the
// caller's goroutine is never tied up by a slow remote call. Queued work is
// picked up in FIFO order by whichever worker frees up first; the pool size
// caps how many operations execute concurrently, system wide.
type Pool struct {
	jobs   chan job
	quit   chan struct{}
	wg     sync.WaitGroup
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewPool creates a new pool with the specified configuration.
// Workers start consuming submissions immediately.
func NewPool(cfg PoolConfig, logger *slog.Logger) *Pool {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = 4
		logger.Warn("invalid worker count specified, using default",
			"specified_count", cfg.WorkerCount,
			"default_count", workerCount)
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	p := &Pool{
		jobs:   make(chan job, queueSize),
		quit:   make(chan struct{}),
		logger: logger,
	}

	for i := 0; i < workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Submit enqueues an operation for execution and returns its pending
// handle. It never blocks: if the queue is full it returns ErrQueueFull,
// and after Shutdown it returns ErrPoolClosed.
func (p *Pool) Submit(op Operation) (*Pending, error) {
	if op == nil {
		return nil, errors.New("operation cannot be nil")
	}

	out := make(chan result, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}

	select {
	case p.jobs <- job{op: op, out: out}:
		return &Pending{done: out}, nil
	default:
		return nil, fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(p.jobs))
	}
}

// RunWithDeadline submits the operation and waits up to timeout for its
// result. On expiry it returns ErrTimedOut and releases the caller; the
// worker invocation keeps running in the background and its result is
// discarded. Context cancellation releases the caller the same way.
func (p *Pool) RunWithDeadline(ctx context.Context, timeout time.Duration, op Operation) (any, error) {
	pending, err := p.Submit(op)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-pending.done:
		return res.value, res.err
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", ErrTimedOut, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown stops accepting new work. If wait is true it blocks until all
// in-flight and already-queued operations have finished. Calling Shutdown
// more than once is harmless.
func (p *Pool) Shutdown(wait bool) {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.quit)
		p.logger.Info("worker pool shutting down", "wait", wait)
	}
	p.mu.Unlock()

	if wait {
		p.wg.Wait()
	}
}

// worker consumes jobs until shutdown, then drains whatever is still queued.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting pool worker", "worker_id", id)

	for {
		select {
		case j := <-p.jobs:
			p.run(j)
		case <-p.quit:
			for {
				select {
				case j := <-p.jobs:
					p.run(j)
				default:
					p.logger.Debug("stopping pool worker", "worker_id", id)
					return
				}
			}
		}
	}
}

// run executes one job. The out channel is buffered so delivery never
// blocks the worker, even when the awaiter has already given up.
func (p *Pool) run(j job) {
	value, err := j.op()
	j.out <- result{value: value, err: err}
}
