// Package poll runs bounded retry loops for conditions that settle asynchronously.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is wrapped by every error Until returns when the deadline passes
var ErrTimeout = errors.New("condition not met before timeout")

// Condition reports whether the awaited state has been reached.
// A non-nil error is remembered and retried, not returned immediately.
type Condition func(ctx context.Context) (bool, error)

// Until evaluates cond every interval until it holds or timeout elapses.
// The returned error wraps ErrTimeout and, if any, the last condition error.
func Until(ctx context.Context, interval, timeout time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		ok, err := cond(ctx)
		if err == nil && ok {
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("%w after %s: %w", ErrTimeout, timeout, lastErr)
			}
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		case <-ticker.C:
		}
	}
}
