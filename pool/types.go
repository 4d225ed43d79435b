package pool

import (
	"context"
	"errors"
)

// ProcessFunc is the caller-supplied transformation applied to each work item.
// It takes a context for cancellation control and an item of type T, returning
// a result of type R. A returned error is captured in the item's Outcome and
// never propagated past the pool boundary.
//
// Type parameters:
//   - T: The type of input item to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, item T) (R, error)

// Outcome is the per-item result of a batch. Exactly one Outcome exists per
// submitted item: either a success carrying Value, or a failure carrying Err.
//
// Fields:
//   - ID: The pool-assigned submission id, matching exactly one submitted item
//   - Value: The result produced by the processor (only valid if Err is nil)
//   - Err: The captured processing error (nil on success)
type Outcome[R any] struct {
	ID    int64
	Value R
	Err   error
}

// Failed reports whether the item ended in a failure outcome.
func (o Outcome[R]) Failed() bool {
	return o.Err != nil
}

// Cancelled reports whether the item was dropped before starting because the
// batch context was cancelled. In-flight items are never interrupted, so a
// cancelled outcome always means the processor was not invoked.
func (o Outcome[R]) Cancelled() bool {
	return errors.Is(o.Err, ErrCancelled)
}

// task pairs a submitted item with its identity and the handle that will
// receive its outcome.
type task[T any, R any] struct {
	id   int64
	item T
	fut  *Future[R]
}
