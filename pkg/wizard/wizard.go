// Package wizard models the caller-side resume workflow as an explicit
// finite-state value with browser-style history. Transitions are pure:
// every operation returns a new History value.
package wizard

import (
	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/tailor"
)

// Step is one stage of the resume workflow.
type Step int

const (
	// StepUpload collects the source resumes.
	StepUpload Step = iota
	// StepJobDescription collects the target job description.
	StepJobDescription
	// StepGenerating streams the initial draft.
	StepGenerating
	// StepReview loops over tone selection, refinement, and undo.
	StepReview
	// StepFinal holds the accepted draft.
	StepFinal
)

// String returns the step name.
func (s Step) String() (name string) {
	switch s {
	case StepUpload:
		name = "upload"
	case StepJobDescription:
		name = "job-description"
	case StepGenerating:
		name = "generating"
	case StepReview:
		name = "review"
	case StepFinal:
		name = "final"
	default:
		name = "unknown"
	}
	return name
}

// State is one point in the workflow: the current step and the draft as it
// stood when the state was recorded.
type State struct {
	Step  Step
	Draft tailor.Draft
}

// History is an append-only list of states with a current-index pointer.
// The zero value is a history positioned at an initial upload state.
type History struct {
	states  []State
	current int
}

// Current returns the state the history points at.
func (h History) Current() (state State) {
	if len(h.states) == 0 {
		state = State{Step: StepUpload}
		return state
	}
	state = h.states[h.current]
	return state
}

// Push appends a new state after the current position, discarding any
// forward states, and advances to it.
func (h History) Push(state State) (next History) {
	kept := h.states[:len(h.states):len(h.states)]
	if len(kept) > 0 {
		kept = kept[:h.current+1]
	}

	next.states = append(append([]State{}, kept...), state)
	next.current = len(next.states) - 1
	return next
}

// GoBack steps to the previous state. ok is false at the start of history.
func (h History) GoBack() (next History, ok bool) {
	if h.current == 0 || len(h.states) == 0 {
		next = h
		return next, false
	}
	next = h
	next.current--
	return next, true
}

// GoForward steps to the next state. ok is false at the end of history.
func (h History) GoForward() (next History, ok bool) {
	if len(h.states) == 0 || h.current >= len(h.states)-1 {
		next = h
		return next, false
	}
	next = h
	next.current++
	return next, true
}

// Len returns the number of recorded states.
func (h History) Len() (n int) {
	n = len(h.states)
	return n
}
