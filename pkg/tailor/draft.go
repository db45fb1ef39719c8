package tailor

import (
	"context"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
)

// GenerateDraft merges the source resumes into one draft tailored to the
// job description, streaming normalized text increments to onChunk as they
// stabilize. The returned draft carries the final normalized text in the
// eager base tone.
func (t *Tailor) GenerateDraft(ctx context.Context, resumeTexts []string, jobDescription string, onChunk func(text string)) (draft Draft, err error) {
	prompt := buildDraftPrompt(resumeTexts, jobDescription)

	var text string
	text, err = t.runStream(ctx, prompt, gemini.GenerateOptions{}, onChunk)
	if err != nil {
		err = classifyFailure(err, "draft generation")
		return draft, err
	}

	draft = Draft{Text: text}
	return draft, err
}

// runStream drives one streaming generation through the retry executor and
// the reconciler. Once any text has been emitted, a mid-stream failure is
// not retried: text the caller has already displayed must not replay.
func (t *Tailor) runStream(ctx context.Context, prompt string, opts gemini.GenerateOptions, onChunk func(text string)) (text string, err error) {
	err = gemini.WithRetry(ctx, func() (callErr error) {
		rec := newReconciler(onChunk)

		callErr = t.svc.GenerateStream(ctx, prompt, opts, func(chunk string) (ingestErr error) {
			rec.ingest(chunk)
			return ingestErr
		})
		if callErr != nil {
			if rec.emitted > 0 {
				callErr = gemini.NoRetry(callErr)
			}
			return callErr
		}

		text, callErr = rec.finalText()
		if callErr != nil {
			callErr = gemini.NoRetry(callErr) // empty output is fatal, not transient
		}
		return callErr
	})
	return text, err
}
