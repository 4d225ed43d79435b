package pool

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_BatchComposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")

	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}

	processFn := func(ctx context.Context, item int) (int, error) {
		if item%5 == 0 {
			return 0, errors.New("boom")
		}
		return item, nil
	}

	if _, err := RunBatch(context.Background(), items, processFn, 3, WithMetrics[int, int](m)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.submitted); got != 10 {
		t.Errorf("submitted: expected 10, got %v", got)
	}
	if got := testutil.ToFloat64(m.completed); got != 8 {
		t.Errorf("completed: expected 8, got %v", got)
	}
	if got := testutil.ToFloat64(m.failed); got != 2 {
		t.Errorf("failed: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.cancelled); got != 0 {
		t.Errorf("cancelled: expected 0, got %v", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Errorf("in-flight after batch: expected 0, got %v", got)
	}
}

func TestMetrics_CancelledItemsCounted(t *testing.T) {
	m := NewMetrics(nil, "cancel")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	items := make([]int, 6)
	processFn := func(pctx context.Context, item int) (int, error) {
		if item == 0 {
			cancel()
		}
		return item, nil
	}
	for i := range items {
		items[i] = i
	}

	outcomes, err := RunBatch(ctx, items, processFn, 1, WithMetrics[int, int](m))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wantCancelled float64
	for _, out := range outcomes {
		if out.Cancelled() {
			wantCancelled++
		}
	}

	if got := testutil.ToFloat64(m.cancelled); got != wantCancelled {
		t.Errorf("cancelled: expected %v, got %v", wantCancelled, got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.observeSubmit()
	m.observeStart()
	m.observeDone(0, nil)
	m.observeCancel()
}
