// Package workers provides the bounded worker pool that fans out the
// synchronization engine's change applications.
//
// The pool admits tasks up to a fixed concurrency limit, optionally gated by
// a start-rate limiter, retries each task once on a non-cancellation
// failure, and stops admitting new tasks after the first task failure. The
// first failure is surfaced by Wait; later failures are dropped.
package workers

import "context"

// Task is one unit of work admitted to the pool. Implementations are
// expected to honor ctx at their own suspension points.
type Task func(ctx context.Context) error

// Limiter gates task starts. A nil Limiter admits immediately.
// *rate.Limiter from golang.org/x/time/rate satisfies the interface.
type Limiter interface {
	// Wait blocks until a task may start, or until ctx is done.
	Wait(ctx context.Context) error
}
