package tailor

import (
	"context"
	"strings"
	"testing"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/pkg/errors"
)

func TestRefineSplitsChangelog(t *testing.T) {
	fake := &fakeGenerator{
		// The delimiter arrives split across chunks.
		generateStream: streamOf(
			"Revised resume body.\n",
			"---CHANGE",
			"LOG---\n",
			"Tightened the summary.\nRemoved a stale role.",
		),
	}
	tl := New(fake)

	var emitted []string
	draft, err := tl.Refine(context.Background(), "old draft", "tighten it", ToneEager, false, func(text string) {
		emitted = append(emitted, text)
	}, nil)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if draft.Text != "Revised resume body." {
		t.Errorf("Unexpected draft text: %q", draft.Text)
	}

	if draft.Changelog != "Tightened the summary.\nRemoved a stale role." {
		t.Errorf("Unexpected changelog: %q", draft.Changelog)
	}

	for _, chunk := range emitted {
		if strings.Contains(chunk, "---") {
			t.Errorf("Delimiter fragment leaked into emitted chunk %q", chunk)
		}
		if strings.Contains(chunk, "Tightened") {
			t.Errorf("Changelog text leaked into emitted chunk %q", chunk)
		}
	}

	joined := strings.Join(emitted, "")
	if joined != draft.Text {
		t.Errorf("Expected emitted chunks to reconstruct the resume text, got %q", joined)
	}
}

func TestRefineWithoutChangelog(t *testing.T) {
	fake := &fakeGenerator{
		generateStream: streamOf("Full revised text, no summary."),
	}
	tl := New(fake)

	draft, err := tl.Refine(context.Background(), "old draft", "feedback", ToneConfident, false, nil, nil)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if draft.Text != "Full revised text, no summary." {
		t.Errorf("Unexpected draft text: %q", draft.Text)
	}

	if draft.Changelog != "" {
		t.Errorf("Expected empty changelog, got %q", draft.Changelog)
	}
}

func TestRefineEmptyBody(t *testing.T) {
	fake := &fakeGenerator{
		generateStream: streamOf("---CHANGELOG---\nChanged everything."),
	}
	tl := New(fake)

	_, err := tl.Refine(context.Background(), "old draft", "feedback", ToneEager, false, nil, nil)
	if err == nil {
		t.Fatal("Expected error for a response with no resume body")
	}

	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got: %v", err)
	}
}

func TestRefineWithBestPractices(t *testing.T) {
	var capturedStreamPrompt string
	var events []string

	fake := &fakeGenerator{
		generate: func(prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
			if !opts.GroundingSearch {
				t.Error("Expected the practices fetch to enable grounding search")
			}
			result.Text = "Quantify impact in every bullet."
			result.Candidates = []gemini.Candidate{{
				GroundingMetadata: &gemini.GroundingMetadata{
					GroundingChunks: []gemini.GroundingChunk{
						{Web: &gemini.WebSource{URI: "https://example.com/guide", Title: "Resume Guide"}},
						{Web: &gemini.WebSource{URI: "https://example.com/guide", Title: "Duplicate"}},
						{Web: &gemini.WebSource{URI: "https://example.com/tips", Title: "Hiring Tips"}},
					},
				},
			}}
			return result, err
		},
	}
	fake.generateStream = func(prompt string, opts gemini.GenerateOptions, onChunk func(text string) error) (err error) {
		capturedStreamPrompt = prompt
		return streamOf("Revised with best practices.")(prompt, opts, onChunk)
	}
	tl := New(fake)

	draft, err := tl.Refine(context.Background(), "old draft", "feedback", ToneEager, true,
		func(text string) {
			events = append(events, "chunk")
		},
		func(sources []GroundingSource) {
			events = append(events, "sources")
			if len(sources) != 2 {
				t.Errorf("Expected 2 deduplicated sources, got %d", len(sources))
			}
		})
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if len(events) < 2 || events[0] != "sources" {
		t.Errorf("Expected sources delivered before any chunk, got order %v", events)
	}

	if len(draft.Sources) != 2 {
		t.Fatalf("Expected 2 sources on the draft, got %d", len(draft.Sources))
	}

	if draft.Sources[0].URI != "https://example.com/guide" || draft.Sources[0].Title != "Resume Guide" {
		t.Errorf("Expected first occurrence to win, got %+v", draft.Sources[0])
	}

	if !strings.Contains(capturedStreamPrompt, "--- BEST PRACTICES START ---\nQuantify impact in every bullet.") {
		t.Error("Expected refine prompt to embed the retrieved advice")
	}
}

func TestRefineBestPracticesFetchFailure(t *testing.T) {
	var capturedStreamPrompt string

	fake := &fakeGenerator{
		generate: func(prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
			err = errors.New("API request failed with status 400: search unavailable")
			return result, err
		},
	}
	fake.generateStream = func(prompt string, opts gemini.GenerateOptions, onChunk func(text string) error) (err error) {
		capturedStreamPrompt = prompt
		return streamOf("Revised without citations.")(prompt, opts, onChunk)
	}
	tl := New(fake)

	sourcesCalled := false
	draft, err := tl.Refine(context.Background(), "old draft", "feedback", ToneEager, true, nil,
		func(sources []GroundingSource) {
			sourcesCalled = true
		})
	if err != nil {
		t.Fatalf("Expected refinement to proceed despite the fetch failure, got: %v", err)
	}

	if sourcesCalled {
		t.Error("Expected no sources callback when the fetch fails")
	}

	if len(draft.Sources) != 0 {
		t.Errorf("Expected no sources on the draft, got %+v", draft.Sources)
	}

	if !strings.Contains(capturedStreamPrompt, "could not be retrieved") {
		t.Error("Expected refine prompt to carry the fallback advice")
	}
}

func TestVisibleBeforeDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		visible string
	}{
		{name: "no delimiter", raw: "plain resume text", visible: "plain resume text"},
		{name: "complete delimiter", raw: "body---CHANGELOG---summary", visible: "body"},
		{name: "trailing partial", raw: "body---CHANGE", visible: "body"},
		{name: "trailing single dash", raw: "body-", visible: "body"},
		{name: "dash mid-text not withheld", raw: "body-and more", visible: "body-and more"},
		{name: "empty", raw: "", visible: ""},
		{name: "delimiter at start", raw: "---CHANGELOG---summary", visible: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := visibleBeforeDelimiter(tt.raw)
			if visible != tt.visible {
				t.Errorf("Expected %q, got %q", tt.visible, visible)
			}
		})
	}
}
