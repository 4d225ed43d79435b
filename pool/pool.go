package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pool is a fixed-capacity worker pool. Items enter through Submit, wait in
// an unbounded FIFO queue, and are processed by at most `concurrency` workers
// at a time. Each submission returns a Future that resolves exactly once with
// the item's Outcome.
//
// Type parameters:
//   - T: The input item type
//   - R: The result type produced by processing items
type Pool[T any, R any] struct {
	fn   ProcessFunc[T, R]
	conf *config[T, R]
	ctx  context.Context

	queue    *pending[*task[T, R]]
	taskChan chan *task[T, R]

	nextID       atomic.Int64
	shutdownOnce sync.Once
	done         chan struct{}

	aggMu  sync.Mutex
	aggErr error
}

// New creates a pool with the given worker count and starts its workers.
// The context bounds the lifetime of all processing: once it is cancelled,
// in-flight items run to completion while pending items resolve as cancelled
// outcomes.
func New[T any, R any](ctx context.Context, concurrency int, fn ProcessFunc[T, R], opts ...Option[T, R]) (*Pool[T, R], error) {
	if concurrency <= 0 {
		return nil, ErrInvalidConcurrency
	}
	if fn == nil {
		return nil, errors.New("pool: process function cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := newConfig(opts...)
	p := &Pool[T, R]{
		fn:       fn,
		conf:     cfg,
		ctx:      ctx,
		queue:    newPending[*task[T, R]](),
		taskChan: make(chan *task[T, R], cfg.taskBuffer),
		done:     make(chan struct{}),
	}

	var g errgroup.Group
	g.Go(p.feed)
	for range concurrency {
		g.Go(p.worker)
	}

	go func() {
		_ = g.Wait()
		close(p.done)
	}()

	return p, nil
}

// Submit queues one item for processing and returns its handle immediately,
// without blocking. It fails with ErrPoolClosed once Shutdown has been
// initiated. Item ids are assigned here, in submission order.
func (p *Pool[T, R]) Submit(item T) (*Future[R], error) {
	t := &task[T, R]{
		id:   p.nextID.Add(1) - 1,
		item: item,
		fut:  newFuture[R](),
	}

	if err := p.queue.push(t); err != nil {
		return nil, err
	}

	p.conf.metrics.observeSubmit()
	return t.fut, nil
}

// Shutdown signals that no further submissions will be accepted. Work already
// queued or running still drains. Idempotent; the returned channel closes
// once every worker has exited.
func (p *Pool[T, R]) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.queue.close()
	})
	return p.done
}

// AwaitAll blocks until every handle resolves and returns the outcomes in
// handle order, which for a single submitter is submission order. The error
// is non-nil only when outcome accounting was violated (ErrAggregation).
func (p *Pool[T, R]) AwaitAll(handles []*Future[R]) ([]Outcome[R], error) {
	outcomes := make([]Outcome[R], 0, len(handles))
	for _, h := range handles {
		outcomes = append(outcomes, h.Get())
	}

	p.aggMu.Lock()
	err := p.aggErr
	p.aggMu.Unlock()

	return outcomes, err
}

// feed moves queued tasks onto the worker channel one at a time, preserving
// FIFO submission order. It owns closing taskChan.
func (p *Pool[T, R]) feed() error {
	defer close(p.taskChan)

	for {
		t, ok := p.queue.pop()
		if ok {
			if !p.send(t) {
				return nil
			}
			continue
		}

		select {
		case <-p.queue.notify:
			continue
		case <-p.queue.closeC:
			// Drain everything queued before close.
			for {
				t, ok := p.queue.pop()
				if !ok {
					return nil
				}
				if !p.send(t) {
					return nil
				}
			}
		case <-p.ctx.Done():
			p.cancelPending()
			return nil
		}
	}
}

// send hands one task to a free worker. When the pool context ends first,
// the task and everything still pending resolve as cancelled and feeding
// stops.
func (p *Pool[T, R]) send(t *task[T, R]) bool {
	select {
	case p.taskChan <- t:
		return true
	case <-p.ctx.Done():
		p.cancelTask(t)
		p.cancelPending()
		return false
	}
}

// cancelPending rejects further submissions and resolves every still-queued
// task as cancelled, so the submission-count == outcome-count invariant holds
// even on an abandoned batch.
func (p *Pool[T, R]) cancelPending() {
	p.queue.close()
	for {
		t, ok := p.queue.pop()
		if !ok {
			return
		}
		p.cancelTask(t)
	}
}

func (p *Pool[T, R]) cancelTask(t *task[T, R]) {
	p.conf.metrics.observeCancel()
	p.deliver(t, Outcome[R]{
		ID:  t.id,
		Err: &ItemError{ID: t.id, Err: ErrCancelled},
	})
}

// deliver resolves a task's handle. A double resolve is recorded as an
// aggregation failure and surfaced from AwaitAll.
func (p *Pool[T, R]) deliver(t *task[T, R], out Outcome[R]) {
	if err := t.fut.resolve(out); err != nil {
		p.aggMu.Lock()
		if p.aggErr == nil {
			p.aggErr = err
		}
		p.aggMu.Unlock()
	}
}
