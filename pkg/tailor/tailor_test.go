package tailor

import (
	"context"
	"testing"
	"time"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
)

// fakeGenerator substitutes the service client in operation tests.
type fakeGenerator struct {
	generate       func(prompt string, opts gemini.GenerateOptions) (gemini.Result, error)
	generateStream func(prompt string, opts gemini.GenerateOptions, onChunk func(text string) error) error
	generateCalls  int
	streamCalls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (result gemini.Result, err error) {
	f.generateCalls++
	if f.generate == nil {
		return result, err
	}
	result, err = f.generate(prompt, opts)
	return result, err
}

func (f *fakeGenerator) GenerateStream(ctx context.Context, prompt string, opts gemini.GenerateOptions, onChunk func(text string) error) (err error) {
	f.streamCalls++
	if f.generateStream == nil {
		return err
	}
	err = f.generateStream(prompt, opts, onChunk)
	return err
}

// streamOf builds a stream implementation that delivers the given chunks in
// order.
func streamOf(chunks ...string) func(prompt string, opts gemini.GenerateOptions, onChunk func(text string) error) error {
	return func(prompt string, opts gemini.GenerateOptions, onChunk func(text string) error) (err error) {
		for _, chunk := range chunks {
			err = onChunk(chunk)
			if err != nil {
				return err
			}
		}
		return err
	}
}

// skipBackoff removes real retry delays for the duration of a test.
func skipBackoff(t *testing.T) {
	t.Helper()
	restore := gemini.SetSleepForTesting(func(ctx context.Context, delay time.Duration) error {
		return nil
	})
	t.Cleanup(restore)
}
