package gemini

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// MaxRetries is the maximum number of attempts for a service call.
	MaxRetries = 7
	// InitialBackoff is the base delay before the first retry.
	InitialBackoff = 2 * time.Second
	// MaxBackoff caps the exponential delay between attempts.
	MaxBackoff = 30 * time.Second
	// maxJitter is the upper bound of the random delay added per retry.
	maxJitter = time.Second
)

// retryableMarkers are substrings that identify a transient service
// failure. Textual markers match case-insensitively.
//
//nolint:gochecknoglobals // Static classification table
var retryableMarkers = []string{
	"429",
	"500",
	"503",
	"SERVICE UNAVAILABLE",
	"RESOURCE_EXHAUSTED",
	"RATE LIMIT",
}

// rateLimitMarkers identify the subset of transient failures caused by
// rate limiting or quota exhaustion.
//
//nolint:gochecknoglobals // Static classification table
var rateLimitMarkers = []string{
	"429",
	"RESOURCE_EXHAUSTED",
	"RATE LIMIT",
}

// sleep is swapped out by tests to avoid real backoff delays.
//
//nolint:gochecknoglobals // Test seam
var sleep = sleepContext

// permanentError marks an error that must not be retried regardless of
// its message.
type permanentError struct {
	err error
}

func (e *permanentError) Error() (msg string) {
	msg = e.err.Error()
	return msg
}

func (e *permanentError) Unwrap() (err error) {
	err = e.err
	return err
}

// NoRetry wraps an error so WithRetry propagates it immediately.
func NoRetry(err error) (wrapped error) {
	if err == nil {
		return nil
	}
	wrapped = &permanentError{err: err}
	return wrapped
}

// WithRetry invokes call up to MaxRetries times, backing off exponentially
// with jitter between attempts. Non-retryable errors and errors on the
// last attempt propagate immediately; exhausting all attempts surfaces the
// last error encountered.
func WithRetry(ctx context.Context, call func() error) (err error) {
	for attempt := 0; attempt < MaxRetries; attempt++ {
		err = call()
		if err == nil {
			return nil
		}

		if !IsRetryable(err) || attempt == MaxRetries-1 {
			return err
		}

		delay := backoffDelay(attempt)
		slog.Warn("transient service failure, retrying",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		sleepErr := sleep(ctx, delay)
		if sleepErr != nil {
			err = errors.Wrap(sleepErr, "retry aborted")
			return err
		}
	}
	return err
}

// IsRetryable reports whether an error carries a transient failure
// signature.
func IsRetryable(err error) (retryable bool) {
	if err == nil {
		return false
	}
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	retryable = containsMarker(err, retryableMarkers)
	return retryable
}

// IsRateLimited reports whether an error indicates rate limiting or
// resource exhaustion.
func IsRateLimited(err error) (limited bool) {
	if err == nil {
		return false
	}
	limited = containsMarker(err, rateLimitMarkers)
	return limited
}

func containsMarker(err error, markers []string) (found bool) {
	msg := strings.ToUpper(err.Error())
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			found = true
			return found
		}
	}
	return found
}

// backoffDelay computes the delay before retrying a failed attempt.
func backoffDelay(attempt int) (delay time.Duration) {
	delay = InitialBackoff << uint(attempt)
	if delay > MaxBackoff {
		delay = MaxBackoff
	}
	delay += time.Duration(rand.Int63n(int64(maxJitter)))
	return delay
}

// sleepContext waits for the delay or the context, whichever ends first.
func sleepContext(ctx context.Context, delay time.Duration) (err error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return err
	case <-timer.C:
		return nil
	}
}
