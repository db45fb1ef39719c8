package tailor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
)

// Refine revises a draft per the user's feedback, optionally grounded in
// freshly fetched best practices. Normalized resume text streams to
// onChunk; grounding sources (when the fetch succeeds) are delivered to
// onSources before streaming begins, so citations are visible while text
// is still generating. The returned draft carries the final text, the
// sources, and the model's change summary.
func (t *Tailor) Refine(ctx context.Context, draftText, feedback string, tone Tone, useBestPractices bool, onChunk func(text string), onSources func(sources []GroundingSource)) (draft Draft, err error) {
	practicesText := ""
	var sources []GroundingSource

	if useBestPractices {
		bp, bpErr := t.FetchBestPractices(ctx)
		if bpErr != nil {
			slog.Warn("best practices fetch failed, refining without sources", "error", bpErr)
			practicesText = bestPracticesFallback
		} else {
			practicesText = bp.Text
			sources = bp.Sources
			if onSources != nil {
				onSources(sources)
			}
		}
	}

	prompt := buildRefinePrompt(draftText, feedback, tone, practicesText)

	var rawFull string
	err = gemini.WithRetry(ctx, func() (callErr error) {
		rec := newReconciler(onChunk)
		var raw strings.Builder
		visible := 0

		callErr = t.svc.GenerateStream(ctx, prompt, gemini.GenerateOptions{}, func(chunk string) (ingestErr error) {
			raw.WriteString(chunk)
			// Only text strictly before the changelog delimiter is
			// resume text. A partially received delimiter is withheld
			// until the next chunk settles what it is.
			v := visibleBeforeDelimiter(raw.String())
			if len(v) > visible {
				rec.ingest(v[visible:])
				visible = len(v)
			}
			return ingestErr
		})
		if callErr != nil {
			if rec.emitted > 0 {
				callErr = gemini.NoRetry(callErr)
			}
			return callErr
		}

		rawFull = raw.String()
		return callErr
	})
	if err != nil {
		err = classifyFailure(err, "refinement")
		return draft, err
	}

	body, changelog := splitChangelog(rawFull)
	text := Normalize(strings.TrimSpace(body))
	if text == "" {
		err = classifyFailure(ErrEmptyResponse, "refinement")
		return draft, err
	}

	draft = Draft{
		Text:      text,
		Sources:   sources,
		Changelog: Normalize(changelog),
	}
	return draft, err
}

// visibleBeforeDelimiter returns the prefix of raw that is certain to be
// resume text: everything before a complete delimiter, or with any
// trailing partial delimiter held back. The returned prefix never shrinks
// as raw grows.
func visibleBeforeDelimiter(raw string) (visible string) {
	if i := strings.Index(raw, ChangelogDelimiter); i >= 0 {
		visible = raw[:i]
		return visible
	}

	held := len(ChangelogDelimiter) - 1
	if held > len(raw) {
		held = len(raw)
	}
	for n := held; n > 0; n-- {
		if strings.HasSuffix(raw, ChangelogDelimiter[:n]) {
			visible = raw[:len(raw)-n]
			return visible
		}
	}

	visible = raw
	return visible
}

// splitChangelog splits a completed refinement response into resume body
// and change summary. Absent the delimiter, the whole response is body.
func splitChangelog(raw string) (body, changelog string) {
	i := strings.Index(raw, ChangelogDelimiter)
	if i < 0 {
		body = raw
		return body, changelog
	}

	body = raw[:i]
	changelog = raw[i+len(ChangelogDelimiter):]
	return body, changelog
}
