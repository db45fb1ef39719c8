package tailor

import (
	"context"
	"strings"
	"testing"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/pkg/errors"
)

const longJobDescription = `Senior Software Engineer wanted. Build distributed systems in Go. Apply via our careers portal. We are an equal opportunity employer and value diversity.`

func TestPreprocessSkipsShortInput(t *testing.T) {
	fake := &fakeGenerator{}
	tl := New(fake)

	input := "  Go engineer.  "
	cleaned := tl.Preprocess(context.Background(), input, KindJobDescription)

	if cleaned != input {
		t.Errorf("Expected short input returned unchanged, got %q", cleaned)
	}

	if fake.generateCalls != 0 {
		t.Errorf("Expected no service calls for short input, got %d", fake.generateCalls)
	}
}

func TestPreprocessCleansInput(t *testing.T) {
	var capturedPrompt string
	var capturedOpts gemini.GenerateOptions

	fake := &fakeGenerator{
		generate: func(prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
			capturedPrompt = prompt
			capturedOpts = opts
			result.Text = "  Senior Software Engineer. Build distributed systems in Go.  "
			return result, err
		},
	}
	tl := New(fake)

	cleaned := tl.Preprocess(context.Background(), longJobDescription, KindJobDescription)

	if cleaned != "Senior Software Engineer. Build distributed systems in Go." {
		t.Errorf("Expected trimmed cleaned text, got %q", cleaned)
	}

	if !strings.Contains(capturedPrompt, longJobDescription) {
		t.Error("Expected prompt to embed the input text")
	}

	if !strings.Contains(capturedPrompt, string(KindJobDescription)) {
		t.Error("Expected prompt to name the content kind")
	}

	if capturedOpts.Temperature == nil || *capturedOpts.Temperature != 0.1 {
		t.Errorf("Expected temperature 0.1, got %+v", capturedOpts.Temperature)
	}
}

func TestPreprocessFallsBackOnFailure(t *testing.T) {
	fake := &fakeGenerator{
		generate: func(prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
			err = errors.New("API request failed with status 400: bad request")
			return result, err
		},
	}
	tl := New(fake)

	cleaned := tl.Preprocess(context.Background(), longJobDescription, KindFeedback)

	if cleaned != longJobDescription {
		t.Errorf("Expected original text back on failure, got %q", cleaned)
	}

	if fake.generateCalls != 1 {
		t.Errorf("Expected 1 attempt for a non-retryable failure, got %d", fake.generateCalls)
	}
}

func TestPreprocessRetriesTransientFailure(t *testing.T) {
	skipBackoff(t)

	fake := &fakeGenerator{}
	fake.generate = func(prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
		if fake.generateCalls < 3 {
			err = errors.New("API request failed with status 503: overloaded")
			return result, err
		}
		result.Text = "Cleaned description."
		return result, err
	}
	tl := New(fake)

	cleaned := tl.Preprocess(context.Background(), longJobDescription, KindJobDescription)

	if cleaned != "Cleaned description." {
		t.Errorf("Expected cleaned text after transient failures, got %q", cleaned)
	}

	if fake.generateCalls != 3 {
		t.Errorf("Expected 3 attempts, got %d", fake.generateCalls)
	}
}

func TestPreprocessFallsBackOnEmptyResult(t *testing.T) {
	fake := &fakeGenerator{
		generate: func(prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
			result.Text = "   \n  "
			return result, err
		},
	}
	tl := New(fake)

	cleaned := tl.Preprocess(context.Background(), longJobDescription, KindJobDescription)

	if cleaned != longJobDescription {
		t.Errorf("Expected original text back for empty cleanup, got %q", cleaned)
	}
}
