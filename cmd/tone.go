package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lynjun02/RESUME-TAILOR-TOOL/pkg/tailor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var toneName string

//nolint:gochecknoglobals // Cobra boilerplate
var toneOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var toneCmd = &cobra.Command{
	Use:   "tone <draft-file>",
	Short: "Rewrite a draft in a different tone",
	Long: `Rewrite an existing draft in a different tone while preserving every fact
and the section structure.

Selectable tones are 'confident' and 'expert'. The 'eager' base tone is
produced by initial generation only.

Example:
  resume-tailor-tool tone draft-eager.txt --tone confident --output draft-confident.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runTone,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(toneCmd)
	toneCmd.Flags().StringVar(&toneName, "tone", "", "Target tone: confident or expert")
	toneCmd.Flags().StringVar(&toneOutput, "output", "", "Write the rewritten draft to this file")
	_ = toneCmd.MarkFlagRequired("tone")
}

func runTone(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	var tone tailor.Tone
	tone, err = tailor.ParseTone(toneName)
	if err != nil {
		return err
	}

	var t *tailor.Tailor
	var outDir string
	t, outDir, err = setupTailor()
	if err != nil {
		return err
	}

	var baseText string
	baseText, err = readDraftFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Rewriting draft in %s tone...\n\n", tone)

	var draft tailor.Draft
	draft, err = t.ChangeTone(ctx, baseText, tone, printChunk)
	fmt.Println()
	if err != nil {
		err = errors.Wrap(err, "tone change failed")
		return err
	}

	err = writeDraftFile(draft, toneOutput, outDir, fmt.Sprintf("draft-%s.txt", tone))
	return err
}

// readDraftFile loads an existing draft from disk.
func readDraftFile(path string) (text string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read draft file: %s", path)
		return text, err
	}

	text = strings.TrimSpace(string(data))
	if text == "" {
		err = errors.Errorf("draft file is empty: %s", path)
		return text, err
	}

	return text, err
}
