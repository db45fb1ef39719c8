package tailor

import (
	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/pkg/errors"
)

// Sentinel errors callers distinguish with errors.Is.
var (
	// ErrEmptyResponse indicates the service completed a stream without
	// producing any text. Not retried.
	ErrEmptyResponse = errors.New("the service returned an empty response")
	// ErrServiceBusy indicates rate limiting or quota exhaustion that
	// persisted through all retries.
	ErrServiceBusy = errors.New("the service is busy, try again shortly")
)

// classifyFailure maps a raw service error onto the caller-facing error
// taxonomy for one operation.
func classifyFailure(err error, operation string) (classified error) {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrEmptyResponse) {
		classified = errors.Wrap(ErrEmptyResponse, operation)
		return classified
	}
	if gemini.IsRateLimited(err) {
		classified = errors.Wrapf(ErrServiceBusy, "%s: %v", operation, err)
		return classified
	}
	classified = errors.Wrapf(err, "%s failed", operation)
	return classified
}
