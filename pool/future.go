package pool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Future is the handle returned by Submit for one work item. It is resolved
// exactly once by the worker that processed the item. Get blocks until the
// outcome is available and returns the same outcome on every subsequent call.
type Future[R any] struct {
	ch       chan Outcome[R]
	resolved atomic.Bool

	mu      sync.Mutex
	done    bool
	outcome Outcome[R]
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{ch: make(chan Outcome[R], 1)}
}

// resolve delivers the outcome to the handle. A second resolve reports
// ErrAggregation: every item must be accounted for exactly once.
func (f *Future[R]) resolve(out Outcome[R]) error {
	if !f.resolved.CompareAndSwap(false, true) {
		return ErrAggregation
	}
	f.ch <- out
	return nil
}

// Get blocks until the item's outcome is available.
func (f *Future[R]) Get() Outcome[R] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.done {
		f.outcome = <-f.ch
		f.done = true
	}
	return f.outcome
}

// GetWithContext blocks until the outcome is available or ctx ends. The
// context error is returned without consuming the outcome, so a later Get
// still succeeds.
func (f *Future[R]) GetWithContext(ctx context.Context) (Outcome[R], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return f.outcome, nil
	}

	select {
	case out := <-f.ch:
		f.outcome = out
		f.done = true
		return out, nil
	case <-ctx.Done():
		var zero Outcome[R]
		return zero, ctx.Err()
	}
}

// IsReady reports whether the outcome is available without blocking.
func (f *Future[R]) IsReady() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return true
	}
	select {
	case out := <-f.ch:
		f.outcome = out
		f.done = true
		return true
	default:
		return false
	}
}
