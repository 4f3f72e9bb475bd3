// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestNewPool_NormalizesLimit(t *testing.T) {
	p := NewPool(0, nil)

	if got := cap(p.sem); got != 1 {
		t.Errorf("expected capacity 1 for a non-positive limit, got %d", got)
	}
}

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(4, nil)

	var executed int32
	for i := 0; i < 10; i++ {
		p.Go(context.Background(), func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&executed); got != 10 {
		t.Errorf("expected 10 executed tasks, got %d", got)
	}
}

func TestPool_WaitOnEmptyPool(t *testing.T) {
	p := NewPool(4, nil)

	if err := p.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const limit = 3
	p := NewPool(limit, nil)

	var inFlight, peak int32
	for i := 0; i < 20; i++ {
		p.Go(context.Background(), func(ctx context.Context) error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&peak); got > limit {
		t.Errorf("expected at most %d tasks in flight, got %d", limit, got)
	}
}

func TestPool_RetriesFailedTaskOnce(t *testing.T) {
	p := NewPool(2, nil)

	var attempts int32
	p.Go(context.Background(), func(ctx context.Context) error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("transient")
		}
		return nil
	})

	if err := p.Wait(); err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestPool_NoRetryOnCancellation(t *testing.T) {
	p := NewPool(1, nil)

	var attempts int32
	p.Go(context.Background(), func(ctx context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return context.Canceled
	})

	err := p.Wait()
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected a single attempt, got %d", got)
	}
}

func TestPool_DropsTasksAfterFirstFailure(t *testing.T) {
	p := NewPool(1, nil)
	errBoom := errors.New("boom")

	var attempts, executed int32
	p.Go(context.Background(), func(ctx context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return errBoom
	})
	// With capacity one the second task cannot be admitted before the first
	// finishes and records its failure.
	p.Go(context.Background(), func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})

	err := p.Wait()
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected the first failure, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected the failing task to be retried once (2 attempts), got %d", got)
	}
	if atomic.LoadInt32(&executed) != 0 {
		t.Error("expected the second task to be dropped")
	}
}

func TestPool_DoneContextDropsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPool(1, nil)

	var executed int32
	p.Go(ctx, func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})

	// Cancellation surfacing is the caller's job; the pool records no
	// failure for dropped tasks.
	if err := p.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&executed) != 0 {
		t.Error("expected the task to be dropped")
	}
}

// countingLimiter counts Wait calls and admits immediately.
type countingLimiter struct {
	waits int32
}

func (c *countingLimiter) Wait(ctx context.Context) error {
	atomic.AddInt32(&c.waits, 1)
	return ctx.Err()
}

// failingLimiter always fails admission with a fixed error.
type failingLimiter struct {
	err error
}

func (f *failingLimiter) Wait(ctx context.Context) error { return f.err }

func TestPool_LimiterGatesEveryStart(t *testing.T) {
	limiter := &countingLimiter{}
	p := NewPool(4, limiter)

	var executed int32
	for i := 0; i < 7; i++ {
		p.Go(context.Background(), func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&limiter.waits); got != 7 {
		t.Errorf("expected 7 limiter waits, got %d", got)
	}
	if got := atomic.LoadInt32(&executed); got != 7 {
		t.Errorf("expected 7 executed tasks, got %d", got)
	}
}

func TestPool_LimiterFailureSurfaces(t *testing.T) {
	errBurst := errors.New("wait exceeds limiter burst")
	p := NewPool(1, &failingLimiter{err: errBurst})

	p.Go(context.Background(), func(ctx context.Context) error { return nil })

	if err := p.Wait(); !errors.Is(err, errBurst) {
		t.Fatalf("expected the limiter error, got %v", err)
	}
}

func TestPool_LimiterCancellationDropsSilently(t *testing.T) {
	p := NewPool(1, &failingLimiter{err: context.Canceled})

	p.Go(context.Background(), func(ctx context.Context) error { return nil })

	if err := p.Wait(); err != nil {
		t.Fatalf("expected no recorded failure, got %v", err)
	}
}

func TestPool_WithTokenBucketLimiter(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Millisecond), 1)
	p := NewPool(2, limiter)

	var executed int32
	for i := 0; i < 5; i++ {
		p.Go(context.Background(), func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&executed); got != 5 {
		t.Errorf("expected 5 executed tasks, got %d", got)
	}
}
