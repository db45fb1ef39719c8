package tailor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
)

// preprocessMinLength is the input size below which preprocessing is
// skipped entirely. Short inputs have no boilerplate worth a service call.
const preprocessMinLength = 50

// preprocessTemperature keeps cleanup output close to deterministic.
const preprocessTemperature = 0.1

// Preprocess cleans raw pasted input (a job description or feedback) down
// to its decision-relevant content. Preprocessing is best-effort: on any
// failure the original text is returned and the failure is only logged.
func (t *Tailor) Preprocess(ctx context.Context, text string, kind ContentKind) (cleaned string) {
	if len(strings.TrimSpace(text)) < preprocessMinLength {
		return text
	}

	prompt := buildPreprocessPrompt(text, kind)
	temp := preprocessTemperature

	var result gemini.Result
	err := gemini.WithRetry(ctx, func() (callErr error) {
		result, callErr = t.svc.Generate(ctx, prompt, gemini.GenerateOptions{Temperature: &temp})
		return callErr
	})
	if err != nil {
		slog.Warn("preprocessing failed, using original text", "kind", string(kind), "error", err)
		return text
	}

	cleaned = strings.TrimSpace(result.Text)
	if cleaned == "" {
		return text
	}

	return cleaned
}
