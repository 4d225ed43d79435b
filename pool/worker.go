package pool

import (
	"fmt"
	"runtime"
	"time"
)

// worker is the main loop of one execution slot. It processes handed-off
// tasks until the feeder closes the channel. A slot picks up its next task
// as soon as the current one finishes; it never waits on other slots.
func (p *Pool[T, R]) worker() error {
	for t := range p.taskChan {
		p.execute(t)
	}
	return nil
}

// execute runs one item through the processor and resolves its handle.
// Processor errors and panics become failure outcomes; they never escape
// the worker or disturb other items.
func (p *Pool[T, R]) execute(t *task[T, R]) {
	if p.ctx.Err() != nil {
		p.cancelTask(t)
		return
	}

	if p.conf.limiter != nil {
		if err := p.conf.limiter.Wait(p.ctx); err != nil {
			p.cancelTask(t)
			return
		}
	}

	if p.conf.onItemStart != nil {
		p.conf.onItemStart(t.item)
	}
	p.conf.metrics.observeStart()
	start := time.Now()

	value, err := p.processWithRecovery(t.item)

	p.conf.metrics.observeDone(time.Since(start), err)
	if p.conf.onItemEnd != nil {
		p.conf.onItemEnd(t.item, value, err)
	}

	out := Outcome[R]{ID: t.id}
	if err != nil {
		out.Err = &ItemError{ID: t.id, Err: err}
	} else {
		out.Value = value
	}
	p.deliver(t, out)
}

// processWithRecovery executes one item with panic recovery and retry logic.
// If a panic occurs, it is converted to an error to prevent crashing the
// worker. Retries use exponential backoff when an initial delay is
// configured.
func (p *Pool[T, R]) processWithRecovery(item T) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("processor panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	maxAttempts := max(p.conf.maxAttempts, 1)

	for attempt := range maxAttempts {
		if attempt > 0 && p.conf.initialDelay > 0 {
			backoffDelay := calcBackoffDelay(p.conf.initialDelay, attempt-1)
			select {
			case <-time.After(backoffDelay):
			case <-p.ctx.Done():
				return result, p.ctx.Err()
			}
		}

		result, err = p.fn(p.ctx, item)
		if err == nil {
			return result, nil
		}

		if p.conf.onRetry != nil && attempt < maxAttempts-1 {
			p.conf.onRetry(item, attempt+1, err)
		}
	}

	return result, err
}
