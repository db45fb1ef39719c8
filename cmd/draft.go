package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/config"
	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/gemini"
	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/jd"
	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/tailor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resumeFiles []string

//nolint:gochecknoglobals // Cobra boilerplate
var draftOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var draftCmd = &cobra.Command{
	Use:   "draft <jd-file-or-url>",
	Short: "Generate a tailored resume draft",
	Long: `Generate a tailored resume draft from one or more plain-text resumes and
a job description.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

The draft streams to stdout as it is generated and is written to a file
when --output is given.

Example:
  resume-tailor-tool draft jd.txt --resume resume-ic.txt --resume resume-lead.txt
  resume-tailor-tool draft https://example.com/jobs/123 --resume resume.txt --output draft.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runDraft,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.Flags().StringArrayVar(&resumeFiles, "resume", nil, "Plain-text resume file (repeatable; order is preserved)")
	draftCmd.Flags().StringVar(&draftOutput, "output", "", "Write the final draft to this file")
	_ = draftCmd.MarkFlagRequired("resume")
}

func runDraft(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	var t *tailor.Tailor
	var outDir string
	t, outDir, err = setupTailor()
	if err != nil {
		return err
	}

	var resumeTexts []string
	resumeTexts, err = readResumeFiles(resumeFiles)
	if err != nil {
		return err
	}

	var jobDescription string
	jobDescription, err = fetchAndLogJD(ctx, args[0])
	if err != nil {
		return err
	}

	jobDescription = preprocessWithSpinner(ctx, t, jobDescription, tailor.KindJobDescription)

	fmt.Println("Generating tailored draft...")
	fmt.Println()

	var draft tailor.Draft
	draft, err = t.GenerateDraft(ctx, resumeTexts, jobDescription, printChunk)
	fmt.Println()
	if err != nil {
		err = errors.Wrap(err, "draft generation failed")
		return err
	}

	err = writeDraftFile(draft, draftOutput, outDir, "draft-eager.txt")
	return err
}

// readResumeFiles loads the source resumes, preserving flag order.
func readResumeFiles(paths []string) (texts []string, err error) {
	texts = make([]string, 0, len(paths))
	for _, path := range paths {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read resume file: %s", path)
			return texts, err
		}

		text := strings.TrimSpace(string(data))
		if text == "" {
			err = errors.Errorf("resume file is empty: %s", path)
			return texts, err
		}
		texts = append(texts, text)
	}
	return texts, err
}

func fetchAndLogJD(ctx context.Context, jdInput string) (jobDescription string, err error) {
	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	jobDescription, err = jd.Fetch(ctx, jdInput)
	if err != nil {
		err = errors.Wrap(err, "failed to load job description")
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}

// preprocessWithSpinner runs best-effort input cleanup with progress output.
func preprocessWithSpinner(ctx context.Context, t *tailor.Tailor, text string, kind tailor.ContentKind) (cleaned string) {
	var s *spinner
	if !getVerbose() {
		s = newSpinner(fmt.Sprintf("Preprocessing %s...", kind))
		s.start()
	} else {
		fmt.Printf("Preprocessing %s...\n", kind)
	}

	cleaned = t.Preprocess(ctx, text, kind)

	if s != nil {
		s.stopSpinner()
	}
	return cleaned
}

// printChunk forwards streamed draft increments to stdout.
func printChunk(text string) {
	fmt.Print(text)
}

// setupTailor loads configuration and constructs the orchestrator.
func setupTailor() (t *tailor.Tailor, outDir string, err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return t, outDir, err
	}

	client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GetGenerationModel())
	t = tailor.New(client)
	outDir = cfg.Defaults.OutputDir
	return t, outDir, err
}

// writeDraftFile saves the draft text, preferring the explicit --output
// path over the configured output directory.
func writeDraftFile(draft tailor.Draft, explicit, outDir, defaultName string) (err error) {
	path := explicit
	if path == "" {
		err = os.MkdirAll(outDir, 0755)
		if err != nil {
			err = errors.Wrapf(err, "failed to create output directory: %s", outDir)
			return err
		}
		path = filepath.Join(outDir, defaultName)
	}

	err = os.WriteFile(path, []byte(draft.Text+"\n"), 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write draft: %s", path)
		return err
	}

	fmt.Printf("\nDraft saved: %s\n", path)
	return err
}
