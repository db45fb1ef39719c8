package tailor

import (
	"strings"
)

// reconciler converts raw streamed increments into stable, non-retreating
// normalized increments. Normalization is not chunk-boundary-safe (a markup
// token may span increments), so the entire raw buffer is re-normalized on
// every increment and only the newly appeared suffix is emitted.
type reconciler struct {
	raw     strings.Builder
	emitted int
	sink    func(text string)
}

// newReconciler creates a reconciler emitting normalized increments to
// sink. A nil sink discards increments.
func newReconciler(sink func(text string)) (r *reconciler) {
	if sink == nil {
		sink = func(string) {}
	}
	r = &reconciler{sink: sink}
	return r
}

// ingest appends one raw increment and emits whatever normalized text has
// newly appeared. If normalization shrank or held steady (for example a
// markup token just opened), nothing is emitted for this increment.
func (r *reconciler) ingest(chunk string) {
	r.raw.WriteString(chunk)

	normalized := Normalize(r.raw.String())
	if len(normalized) <= r.emitted {
		return
	}

	r.sink(normalized[r.emitted:])
	r.emitted = len(normalized)
}

// finalText normalizes the trimmed full raw buffer at stream end. An empty
// result is an Empty-Response failure.
func (r *reconciler) finalText() (text string, err error) {
	text = Normalize(strings.TrimSpace(r.raw.String()))
	if text == "" {
		err = ErrEmptyResponse
		return text, err
	}
	return text, err
}
