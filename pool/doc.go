// Package pool provides a generic, bounded-concurrency worker pool for
// batch processing.
//
// The primary entry point is RunBatch, which processes an ordered slice of
// work items with a fixed number of workers and returns one Outcome per item,
// in submission order, regardless of completion order. A failing item never
// aborts the batch: its error (or recovered panic) is captured in the item's
// Outcome while the remaining items keep processing.
//
// # Basic Usage
//
//	ctx := context.Background()
//	items := []string{"a.txt", "b.txt", "c.txt"}
//	outcomes, err := pool.RunBatch(ctx, items, readFile, 4)
//	for _, out := range outcomes {
//	    if out.Failed() {
//	        log.Printf("item %d: %v", out.ID, out.Err)
//	    }
//	}
//
// # Long-Running Pools
//
// For callers that need handle-level control, New starts a pool that accepts
// submissions until Shutdown. Submit never blocks; it returns a Future that
// resolves exactly once when a worker finishes the item:
//
//	p, _ := pool.New(ctx, 4, processFn)
//	fut, _ := p.Submit(item)
//	p.Shutdown()
//	out := fut.Get()
//
// # Options
//
// Behaviour is tuned with functional options: WithRetryPolicy adds
// exponential-backoff retries, WithRateLimit throttles throughput via
// golang.org/x/time/rate, WithMetrics attaches Prometheus instrumentation,
// and WithOnItemStart/WithOnItemEnd/WithOnRetry register lifecycle hooks.
package pool
