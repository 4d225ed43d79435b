package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConcurrency is returned when a pool or batch is requested
	// with a non-positive worker count. No work starts in that case.
	ErrInvalidConcurrency = errors.New("pool: concurrency must be a positive integer")

	// ErrPoolClosed is returned by Submit after Shutdown has been initiated.
	ErrPoolClosed = errors.New("pool: closed to new submissions")

	// ErrCancelled marks outcomes for items that were still pending when the
	// batch context was cancelled.
	ErrCancelled = errors.New("pool: item cancelled before processing")

	// ErrAggregation indicates broken outcome accounting, such as a handle
	// resolved twice. It is unreachable under correct operation and is
	// surfaced from AwaitAll rather than swallowed.
	ErrAggregation = errors.New("pool: outcome accounting violated")
)

// ItemError wraps a processing failure with the identity of the item that
// produced it. It is the error carried by failure outcomes.
type ItemError struct {
	ID  int64
	Err error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.ID, e.Err)
}

// Unwrap returns the underlying processing error.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// AsItemError extracts an ItemError from err, reporting whether one was found.
func AsItemError(err error) (*ItemError, bool) {
	var ie *ItemError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
