package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/tailor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var feedback string

//nolint:gochecknoglobals // Cobra boilerplate
var feedbackFile string

//nolint:gochecknoglobals // Cobra boilerplate
var useBestPractices bool

//nolint:gochecknoglobals // Cobra boilerplate
var refineTone string

//nolint:gochecknoglobals // Cobra boilerplate
var refineOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var refineCmd = &cobra.Command{
	Use:   "refine <draft-file>",
	Short: "Refine a draft using your feedback",
	Long: `Refine an existing draft based on feedback, optionally grounding the
revision in current resume-writing best practices fetched from the web.

With --best-practices, sources are printed as soon as they are available,
while the revised text is still streaming. A summary of what changed is
printed after completion.

Example:
  resume-tailor-tool refine draft-confident.txt --feedback "tighten the summary, drop the oldest role"
  resume-tailor-tool refine draft-eager.txt --feedback-file notes.txt --best-practices`,
	Args: cobra.ExactArgs(1),
	RunE: runRefine,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(refineCmd)
	refineCmd.Flags().StringVar(&feedback, "feedback", "", "Feedback to apply to the draft")
	refineCmd.Flags().StringVar(&feedbackFile, "feedback-file", "", "File containing feedback to apply")
	refineCmd.Flags().BoolVar(&useBestPractices, "best-practices", false, "Ground the revision in current best practices (with citations)")
	refineCmd.Flags().StringVar(&refineTone, "tone", string(tailor.ToneEager), "Tone the draft is currently in: eager, confident, or expert")
	refineCmd.Flags().StringVar(&refineOutput, "output", "", "Write the refined draft to this file")
}

func runRefine(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	var tone tailor.Tone
	tone, err = tailor.ParseTone(refineTone)
	if err != nil {
		return err
	}

	var feedbackText string
	feedbackText, err = resolveFeedback()
	if err != nil {
		return err
	}

	var t *tailor.Tailor
	var outDir string
	t, outDir, err = setupTailor()
	if err != nil {
		return err
	}

	var draftText string
	draftText, err = readDraftFile(args[0])
	if err != nil {
		return err
	}

	feedbackText = preprocessWithSpinner(ctx, t, feedbackText, tailor.KindFeedback)

	fmt.Println("Refining draft...")
	fmt.Println()

	var draft tailor.Draft
	draft, err = t.Refine(ctx, draftText, feedbackText, tone, useBestPractices, printChunk, printSources)
	fmt.Println()
	if err != nil {
		err = errors.Wrap(err, "refinement failed")
		return err
	}

	if draft.Changelog != "" {
		fmt.Println("\nChanges applied:")
		fmt.Println(draft.Changelog)
	}

	err = writeDraftFile(draft, refineOutput, outDir, fmt.Sprintf("draft-%s-refined.txt", tone))
	return err
}

// resolveFeedback returns the feedback text from whichever flag was set.
func resolveFeedback() (text string, err error) {
	if feedback != "" && feedbackFile != "" {
		err = errors.New("--feedback and --feedback-file are mutually exclusive")
		return text, err
	}

	if feedbackFile != "" {
		text, err = readDraftFile(feedbackFile)
		if err != nil {
			err = errors.Wrap(err, "failed to read feedback file")
			return text, err
		}
		return text, err
	}

	if feedback == "" {
		err = errors.New("feedback is required (--feedback or --feedback-file)")
		return text, err
	}

	text = feedback
	return text, err
}

// printSources lists grounding citations as soon as they are available.
func printSources(sources []tailor.GroundingSource) {
	if len(sources) == 0 {
		return
	}

	fmt.Println("Best-practices sources:")
	for _, source := range sources {
		title := source.Title
		if title == "" {
			title = source.URI
		}
		fmt.Printf("  %s - %s\n", title, source.URI)
	}
	fmt.Println()
}
