package pool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_Get(t *testing.T) {
	t.Run("successful outcome", func(t *testing.T) {
		fut := newFuture[string]()

		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = fut.resolve(Outcome[string]{ID: 42, Value: "success"})
		}()

		out := fut.Get()
		if out.Failed() {
			t.Errorf("expected success, got %v", out.Err)
		}
		if out.Value != "success" || out.ID != 42 {
			t.Errorf("unexpected outcome %+v", out)
		}
	})

	t.Run("repeated Get returns the same outcome", func(t *testing.T) {
		fut := newFuture[int]()
		_ = fut.resolve(Outcome[int]{ID: 1, Value: 123})

		first := fut.Get()
		second := fut.Get()
		if first != second {
			t.Errorf("Get calls returned different outcomes: %+v vs %+v", first, second)
		}
		if first.Value != 123 {
			t.Errorf("expected value 123, got %d", first.Value)
		}
	})
}

func TestFuture_GetWithContext(t *testing.T) {
	t.Run("outcome before deadline", func(t *testing.T) {
		fut := newFuture[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = fut.resolve(Outcome[string]{ID: 7, Value: "done"})
		}()

		out, err := fut.GetWithContext(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Value != "done" {
			t.Errorf("expected 'done', got %q", out.Value)
		}
	})

	t.Run("deadline before outcome", func(t *testing.T) {
		fut := newFuture[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		if _, err := fut.GetWithContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline error, got %v", err)
		}

		// A timed-out wait must not consume the outcome.
		_ = fut.resolve(Outcome[string]{ID: 7, Value: "late"})
		if out := fut.Get(); out.Value != "late" {
			t.Errorf("outcome lost after timed-out wait: %+v", out)
		}
	})
}

func TestFuture_IsReady(t *testing.T) {
	fut := newFuture[int]()

	if fut.IsReady() {
		t.Errorf("unresolved future reported ready")
	}

	_ = fut.resolve(Outcome[int]{ID: 0, Value: 5})

	if !fut.IsReady() {
		t.Errorf("resolved future reported not ready")
	}
	if out := fut.Get(); out.Value != 5 {
		t.Errorf("expected value 5, got %d", out.Value)
	}
}

func TestFuture_ResolveOnce(t *testing.T) {
	fut := newFuture[int]()

	if err := fut.resolve(Outcome[int]{ID: 0, Value: 1}); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if err := fut.resolve(Outcome[int]{ID: 0, Value: 2}); !errors.Is(err, ErrAggregation) {
		t.Fatalf("second resolve: expected ErrAggregation, got %v", err)
	}

	if out := fut.Get(); out.Value != 1 {
		t.Errorf("expected first outcome to win, got %d", out.Value)
	}
}
