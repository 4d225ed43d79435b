package pool

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a pool.
type Option[T any, R any] func(*config[T, R])

type config[T any, R any] struct {
	taskBuffer   int
	maxAttempts  int
	initialDelay time.Duration
	limiter      *rate.Limiter
	metrics      *Metrics

	onItemStart func(T)
	onItemEnd   func(T, R, error)
	onRetry     func(T, int, error)
}

func newConfig[T any, R any](opts ...Option[T, R]) *config[T, R] {
	cfg := &config[T, R]{
		maxAttempts: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithTaskBuffer sets the buffer size of the channel feeding the workers.
// The default of 0 hands every item directly to a free worker; a larger
// buffer can improve throughput for very short items.
func WithTaskBuffer[T any, R any](size int) Option[T, R] {
	return func(cfg *config[T, R]) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithRetryPolicy enables automatic retries for failing items.
// maxAttempts is the total number of attempts per item; initialDelay is the
// delay before the first retry, doubling on each subsequent retry.
// Without this option every item is attempted exactly once.
func WithRetryPolicy[T any, R any](maxAttempts int, initialDelay time.Duration) Option[T, R] {
	return func(cfg *config[T, R]) {
		if maxAttempts > 0 {
			cfg.maxAttempts = maxAttempts
		}
		if initialDelay > 0 {
			cfg.initialDelay = initialDelay
		}
	}
}

// WithRateLimit throttles item starts across all workers.
// itemsPerSecond is the sustained rate; burst is the number of items that may
// start back-to-back before the limiter begins pacing.
func WithRateLimit[T any, R any](itemsPerSecond float64, burst int) Option[T, R] {
	return func(cfg *config[T, R]) {
		if itemsPerSecond > 0 && burst > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(itemsPerSecond), burst)
		}
	}
}

// WithMetrics attaches Prometheus instrumentation to the pool.
func WithMetrics[T any, R any](m *Metrics) Option[T, R] {
	return func(cfg *config[T, R]) {
		cfg.metrics = m
	}
}

// WithOnItemStart registers a hook invoked just before an item is processed.
func WithOnItemStart[T any, R any](fn func(item T)) Option[T, R] {
	return func(cfg *config[T, R]) {
		cfg.onItemStart = fn
	}
}

// WithOnItemEnd registers a hook invoked after each item finishes, with the
// final result and error of that item.
func WithOnItemEnd[T any, R any](fn func(item T, result R, err error)) Option[T, R] {
	return func(cfg *config[T, R]) {
		cfg.onItemEnd = fn
	}
}

// WithOnRetry registers a hook invoked before each retry attempt with the
// attempt number (1 = first retry) and the error that triggered it.
func WithOnRetry[T any, R any](fn func(item T, attempt int, err error)) Option[T, R] {
	return func(cfg *config[T, R]) {
		cfg.onRetry = fn
	}
}

// calcBackoffDelay calculates the exponential backoff delay for retry
// attempts. attemptNumber is 0-indexed, so with initialDelay=1s the delays
// are 1s, 2s, 4s, ...
func calcBackoffDelay(initialDelay time.Duration, attemptNumber int) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	backoffFactor := math.Pow(2, float64(attemptNumber))
	return time.Duration(float64(initialDelay) * backoffFactor)
}
