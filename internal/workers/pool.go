package workers

import (
	"context"
	"errors"
	"sync"
)

// Pool runs tasks with at most a fixed number in flight.
//
// A Pool is single-use: admit tasks with Go, then call Wait exactly once to
// drain it. Cancellation is the caller's concern — a done context makes Go
// drop tasks silently, and the caller is expected to check ctx.Err() after
// Wait when it needs to surface the cancellation.
type Pool struct {
	limiter Limiter
	sem     chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	firstErr error
}

// NewPool builds a pool admitting at most limit tasks in flight. A limit
// below one is raised to one. The limiter may be nil.
func NewPool(limit int, limiter Limiter) *Pool {
	if limit < 1 {
		limit = 1
	}

	return &Pool{
		limiter: limiter,
		sem:     make(chan struct{}, limit),
	}
}

// Go admits task to the pool, blocking for rate and capacity. The task is
// dropped without running when ctx is already done, when an earlier task has
// failed, or when an earlier task fails while this one waits for admission.
func (p *Pool) Go(ctx context.Context, task Task) {
	if ctx.Err() != nil || p.Failed() {
		return
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			if !isCancellation(err) {
				p.recordError(err)
			}
			return
		}
	}

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}

	// Admission may have blocked for a while. A failure recorded in the
	// meantime means this task must be dropped, not started.
	if p.Failed() {
		<-p.sem
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.sem }()

		if err := p.runTask(ctx, task); err != nil {
			p.recordError(err)
		}
	}()
}

// Wait blocks until every started task has finished and returns the first
// recorded failure, if any.
func (p *Pool) Wait() error {
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.firstErr
}

// Failed reports whether a task has already failed.
func (p *Pool) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.firstErr != nil
}

// runTask runs task, retrying exactly once when the first attempt fails
// with a non-cancellation error.
func (p *Pool) runTask(ctx context.Context, task Task) error {
	err := task(ctx)
	if err == nil || isCancellation(err) || ctx.Err() != nil {
		return err
	}

	return task(ctx)
}

func (p *Pool) recordError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.firstErr == nil {
		p.firstErr = err
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
