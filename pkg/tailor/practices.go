package tailor

import (
	"context"
	"strings"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/pkg/errors"
)

// bestPracticesFallback stands in for retrieved advice when the grounded
// fetch fails. Refinement proceeds without citations in that case.
const bestPracticesFallback = `Current best practices could not be retrieved. Apply widely accepted resume conventions: concise accomplishment statements, quantified impact, strong action verbs, reverse-chronological employment history.`

// FetchBestPractices retrieves current resume-writing advice through one
// search-grounded generation call, returning the advisory text and its
// deduplicated citations.
func (t *Tailor) FetchBestPractices(ctx context.Context) (bp BestPractices, err error) {
	var result gemini.Result
	err = gemini.WithRetry(ctx, func() (callErr error) {
		result, callErr = t.svc.Generate(ctx, bestPracticesPrompt, gemini.GenerateOptions{GroundingSearch: true})
		return callErr
	})
	if err != nil {
		err = errors.Wrap(err, "best practices fetch failed")
		return bp, err
	}

	bp.Text = strings.TrimSpace(result.Text)
	bp.Sources = dedupSources(result.Candidates)
	return bp, err
}

// dedupSources flattens citation chunks across all candidates and
// deduplicates them by URI. The first occurrence wins both position and
// title; entries without a URI are dropped.
func dedupSources(candidates []gemini.Candidate) (sources []GroundingSource) {
	seen := make(map[string]bool)

	for _, cand := range candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			if seen[chunk.Web.URI] {
				continue
			}
			seen[chunk.Web.URI] = true
			sources = append(sources, GroundingSource{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return sources
}
