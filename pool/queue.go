package pool

import "sync"

// pending is the unbounded FIFO queue between Submit and the workers.
// push never blocks, which keeps Submit non-blocking regardless of how far
// the workers are behind. A single feeder goroutine moves items from here
// onto the worker channel, preserving submission order.
type pending[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	closed bool

	// notify carries at most one wakeup token; the feeder re-checks the
	// queue after every wakeup, so coalesced tokens are not lost work.
	notify chan struct{}
	closeC chan struct{}
}

func newPending[T any]() *pending[T] {
	return &pending[T]{
		notify: make(chan struct{}, 1),
		closeC: make(chan struct{}),
	}
}

// push appends an item in FIFO order. Returns ErrPoolClosed once close has
// been called.
func (q *pending[T]) push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrPoolClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// pop removes and returns the oldest item without blocking.
func (q *pending[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}

	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return v, true
}

// close rejects further pushes. Items already queued stay available to pop.
// Idempotent.
func (q *pending[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.closeC)
	}
}

