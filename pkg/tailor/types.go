package tailor

import (
	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/pkg/errors"
)

// Tone is a writing-style variant of the same underlying resume content.
type Tone string

const (
	// ToneEager is the base tone. It is produced only by initial draft
	// generation, never by a tone change.
	ToneEager Tone = "eager"
	// ToneConfident rewrites the draft with assured, direct phrasing.
	ToneConfident Tone = "confident"
	// ToneExpert rewrites the draft with authoritative, senior phrasing.
	ToneExpert Tone = "expert"
)

// ParseTone validates a tone name supplied by the caller.
func ParseTone(name string) (tone Tone, err error) {
	switch Tone(name) {
	case ToneEager:
		tone = ToneEager
	case ToneConfident:
		tone = ToneConfident
	case ToneExpert:
		tone = ToneExpert
	default:
		err = errors.Errorf("unknown tone: %q (valid: eager, confident, expert)", name)
	}
	return tone, err
}

// GroundingSource is a citation returned alongside retrieval-augmented
// generation. Identity is the URI, matched exactly.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Draft is the text plus optional sources and changelog produced for one
// tone. Drafts are replaced wholesale, never mutated in place.
type Draft struct {
	Text      string            `json:"text"`
	Sources   []GroundingSource `json:"sources,omitempty"`
	Changelog string            `json:"changelog,omitempty"`
}

// BestPractices is the advisory text and citations retrieved before a
// best-practices refinement.
type BestPractices struct {
	Text    string
	Sources []GroundingSource
}

// ContentKind labels the input being preprocessed, so the prompt can name
// what it is cleaning up.
type ContentKind string

const (
	// KindJobDescription marks job description input.
	KindJobDescription ContentKind = "job description"
	// KindFeedback marks user feedback on a draft.
	KindFeedback ContentKind = "feedback on a resume draft"
)

// Tailor orchestrates draft generation, tone changes, and refinement
// against a generative service.
type Tailor struct {
	svc gemini.Generator
}

// New creates a Tailor over the given service client.
func New(svc gemini.Generator) (t *Tailor) {
	t = &Tailor{svc: svc}
	return t
}
