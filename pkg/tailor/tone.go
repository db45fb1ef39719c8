package tailor

import (
	"context"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/pkg/errors"
)

// ChangeTone rewrites an existing draft in the requested tone, preserving
// all facts and structure. Only confident and expert are selectable: eager
// is the base tone and is produced only by initial generation.
func (t *Tailor) ChangeTone(ctx context.Context, baseText string, tone Tone, onChunk func(text string)) (draft Draft, err error) {
	if tone != ToneConfident && tone != ToneExpert {
		err = errors.Errorf("tone %q cannot be requested: only %q and %q are selectable", tone, ToneConfident, ToneExpert)
		return draft, err
	}

	prompt := buildTonePrompt(baseText, tone)

	var text string
	text, err = t.runStream(ctx, prompt, gemini.GenerateOptions{}, onChunk)
	if err != nil {
		err = classifyFailure(err, "tone change")
		return draft, err
	}

	draft = Draft{Text: text}
	return draft, err
}
