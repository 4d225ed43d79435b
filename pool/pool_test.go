package pool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPool_SubmitAndAwait(t *testing.T) {
	p, err := New(context.Background(), 3, func(ctx context.Context, item string) (int, error) {
		return len(item), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := []string{"a", "bb", "ccc", "dddd"}
	handles := make([]*Future[int], 0, len(items))
	for _, item := range items {
		fut, err := p.Submit(item)
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		handles = append(handles, fut)
	}

	p.Shutdown()

	outcomes, err := p.AwaitAll(handles)
	if err != nil {
		t.Fatalf("await failed: %v", err)
	}

	for i, out := range outcomes {
		if out.Failed() {
			t.Errorf("item %d: unexpected failure: %v", i, out.Err)
		}
		if out.Value != len(items[i]) {
			t.Errorf("item %d: expected %d, got %d", i, len(items[i]), out.Value)
		}
		if out.ID != int64(i) {
			t.Errorf("item %d: expected id %d, got %d", i, i, out.ID)
		}
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p, err := New(context.Background(), 2, func(ctx context.Context, item int) (int, error) {
		return item, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Shutdown()

	if _, err := p.Submit(1); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_ShutdownIdempotent(t *testing.T) {
	p, err := New(context.Background(), 2, func(ctx context.Context, item int) (int, error) {
		return item, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := p.Shutdown()
	second := p.Shutdown()
	if first != second {
		t.Errorf("repeated Shutdown should return the same done channel")
	}

	select {
	case <-first:
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not shut down")
	}
}

func TestPool_ShutdownDrainsOutstandingWork(t *testing.T) {
	p, err := New(context.Background(), 2, func(ctx context.Context, item int) (int, error) {
		time.Sleep(5 * time.Millisecond)
		return item * 10, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	handles := make([]*Future[int], 0, 10)
	for i := range 10 {
		fut, err := p.Submit(i)
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		handles = append(handles, fut)
	}

	done := p.Shutdown()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("shutdown did not drain queued work")
	}

	for i, fut := range handles {
		if !fut.IsReady() {
			t.Fatalf("handle %d not resolved after drain", i)
		}
		if out := fut.Get(); out.Value != i*10 {
			t.Errorf("handle %d: expected %d, got %d", i, i*10, out.Value)
		}
	}
}

func TestPool_InvalidConstruction(t *testing.T) {
	if _, err := New[int, int](context.Background(), 0, func(ctx context.Context, item int) (int, error) {
		return item, nil
	}); !errors.Is(err, ErrInvalidConcurrency) {
		t.Errorf("expected ErrInvalidConcurrency, got %v", err)
	}

	if _, err := New[int, int](context.Background(), 2, nil); err == nil {
		t.Errorf("expected error for nil process function")
	}
}

func TestPool_DoubleResolveSurfacesAggregationError(t *testing.T) {
	p, err := New(context.Background(), 1, func(ctx context.Context, item int) (int, error) {
		return item, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Shutdown()

	tk := &task[int, int]{id: 0, fut: newFuture[int]()}
	p.deliver(tk, Outcome[int]{ID: 0, Value: 1})
	p.deliver(tk, Outcome[int]{ID: 0, Value: 2})

	if _, err := p.AwaitAll([]*Future[int]{tk.fut}); !errors.Is(err, ErrAggregation) {
		t.Errorf("expected ErrAggregation, got %v", err)
	}
}
