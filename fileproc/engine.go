package fileproc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/utkarsh5026/filebatch/pool"
)

// Options configures an Engine run.
type Options struct {
	// Dir is the directory whose regular files form the batch.
	Dir string

	// Processor transforms one file into a Result.
	Processor Processor

	// Workers is the fixed pool capacity. Must be positive.
	Workers int

	// Logger receives progress and summary records. Defaults to a discard
	// logger.
	Logger *slog.Logger

	// RateLimit throttles file starts per second when positive. RateBurst
	// defaults to 1.
	RateLimit float64
	RateBurst int

	// Retries is the total attempts per file (1 = no retries). RetryDelay
	// is the initial backoff, defaulting to 100ms when retries are enabled.
	Retries    int
	RetryDelay time.Duration

	// Metrics, when set, instruments the underlying pool.
	Metrics *pool.Metrics

	// OnItemEnd is invoked after each file finishes, successful or not.
	// Used by the CLI to advance its progress bar.
	OnItemEnd func(item Item, result Result, err error)
}

// Engine orchestrates a full batch: enumerate, process with bounded
// concurrency, aggregate in submission order.
type Engine struct {
	opts Options
}

// Report is the aggregated outcome of one run.
type Report struct {
	Items     []Item
	Outcomes  []pool.Outcome[Result]
	Succeeded int
	Failed    int
	Cancelled int
	Elapsed   time.Duration
}

// Ok reports whether every file processed successfully.
func (r *Report) Ok() bool {
	return r.Failed == 0 && r.Cancelled == 0
}

// NewEngine validates options and returns a ready engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Dir == "" {
		return nil, errors.New("fileproc: directory is required")
	}
	if opts.Processor == nil {
		return nil, errors.New("fileproc: processor is required")
	}
	if opts.Workers <= 0 {
		return nil, pool.ErrInvalidConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{opts: opts}, nil
}

// Run executes the batch and blocks until every enumerated file is accounted
// for. Per-file failures land in the report; only enumeration problems and
// broken pool invariants surface as errors.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	items, err := Enumerate(e.opts.Dir)
	if err != nil {
		return nil, err
	}

	log := e.opts.Logger
	log.Info("starting batch",
		"dir", e.opts.Dir,
		"files", len(items),
		"workers", e.opts.Workers)

	start := time.Now()
	outcomes, err := pool.RunBatch(ctx, items, e.opts.Processor, e.opts.Workers, e.poolOptions()...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Items:    items,
		Outcomes: outcomes,
		Elapsed:  time.Since(start),
	}
	for i, out := range outcomes {
		switch {
		case out.Cancelled():
			report.Cancelled++
		case out.Failed():
			report.Failed++
			log.Warn("file failed", "path", items[i].Path, "error", out.Err)
		default:
			report.Succeeded++
		}
	}

	log.Info("batch complete",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"cancelled", report.Cancelled,
		"elapsed", report.Elapsed)

	return report, nil
}

func (e *Engine) poolOptions() []pool.Option[Item, Result] {
	var opts []pool.Option[Item, Result]

	if e.opts.RateLimit > 0 {
		burst := e.opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		opts = append(opts, pool.WithRateLimit[Item, Result](e.opts.RateLimit, burst))
	}

	if e.opts.Retries > 1 {
		delay := e.opts.RetryDelay
		if delay <= 0 {
			delay = 100 * time.Millisecond
		}
		opts = append(opts, pool.WithRetryPolicy[Item, Result](e.opts.Retries, delay))
	}

	if e.opts.Metrics != nil {
		opts = append(opts, pool.WithMetrics[Item, Result](e.opts.Metrics))
	}

	if e.opts.OnItemEnd != nil {
		opts = append(opts, pool.WithOnItemEnd[Item, Result](e.opts.OnItemEnd))
	}

	return opts
}
