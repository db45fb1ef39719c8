package gemini

import (
	"context"
	"time"
)

// Export retry internals for tests in other packages.

// SetSleepForTesting replaces the inter-retry delay function and returns a
// restore function. Tests use it to exercise full retry sequences without
// real backoff waits.
func SetSleepForTesting(fn func(ctx context.Context, delay time.Duration) error) (restore func()) {
	previous := sleep
	sleep = fn
	restore = func() {
		sleep = previous
	}
	return restore
}
