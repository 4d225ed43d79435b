package pool

import (
	"context"
	"errors"
)

// RunBatch processes an ordered, finite slice of items end-to-end: it
// constructs a pool with the given concurrency, submits every item in input
// order, shuts the pool down, and awaits all handles. The returned outcomes
// are in submission order regardless of completion order, one per item.
//
// A failing item never aborts the batch; its Outcome carries the error.
// An empty input returns an empty slice immediately. Non-positive
// concurrency fails with ErrInvalidConcurrency before any item is processed.
//
// When ctx is cancelled mid-batch, items already executing run to
// completion and items still pending resolve as cancelled outcomes
// (Outcome.Cancelled reports true).
func RunBatch[T any, R any](
	ctx context.Context,
	items []T,
	fn ProcessFunc[T, R],
	concurrency int,
	opts ...Option[T, R],
) ([]Outcome[R], error) {
	if concurrency <= 0 {
		return nil, ErrInvalidConcurrency
	}
	if len(items) == 0 {
		return []Outcome[R]{}, nil
	}

	p, err := New(ctx, min(concurrency, len(items)), fn, opts...)
	if err != nil {
		return nil, err
	}

	handles := make([]*Future[R], 0, len(items))
	for i, item := range items {
		fut, submitErr := p.Submit(item)
		if submitErr != nil {
			if !errors.Is(submitErr, ErrPoolClosed) || ctx.Err() == nil {
				return nil, submitErr
			}
			// The context was cancelled mid-submission and the pool closed
			// itself. The remaining items still get accounted for, as
			// cancelled outcomes.
			for ; i < len(items); i++ {
				fut := newFuture[R]()
				p.conf.metrics.observeCancel()
				_ = fut.resolve(Outcome[R]{
					ID:  int64(i),
					Err: &ItemError{ID: int64(i), Err: ErrCancelled},
				})
				handles = append(handles, fut)
			}
			break
		}
		handles = append(handles, fut)
	}

	p.Shutdown()
	return p.AwaitAll(handles)
}
