package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/gref/internal/clipboard"
	"github.com/matsen/gref/internal/guide"
)

var (
	runFlags   processFlags
	runSection int
	runCopy    bool
)

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().IntVarP(&runSection, "section", "s", 0, "Only output this section (1-based)")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "Copy the selected section's prompt to the clipboard (requires --section)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render a prompt per guideline section with its cited references",
	Long: `Render a prompt per guideline section with its cited references.

Usage:
  gref run --guide guide.txt --bib refs.txt
  gref run --guide guide.pdf --bib refs.txt --human
  gref run -g guide.txt -b refs.txt --section 4 --copy
  pdftotext guide.pdf - | gref run -g - -b refs.txt

The prompt template can be replaced with --template or the "template"
config key. Template fields: .Index, .Heading, .Section, .References.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

// RunResponse is the JSON response for the run command.
type RunResponse struct {
	SectionCount   int                   `json:"section_count"`
	ReferenceCount int                   `json:"reference_count"`
	Sections       []guide.SectionResult `json:"sections"`
	Copied         bool                  `json:"copied,omitempty"`
}

func runRun(cmd *cobra.Command, args []string) error {
	if runCopy && runSection == 0 {
		exitWithError(ExitError, "--copy requires --section")
	}
	if runCopy && !clipboard.IsAvailable() {
		exitWithError(ExitClipboardUnavailable, "clipboard unavailable (install pbcopy, wl-copy, xclip or xsel)")
	}

	res := runFlags.mustProcess()

	sections, err := selectSection(res, runSection)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	copied := false
	if runCopy {
		if err := clipboard.Copy(sections[0].Prompt); err != nil {
			if errors.Is(err, clipboard.ErrClipboardUnavailable) {
				exitWithError(ExitClipboardUnavailable, "clipboard unavailable (install pbcopy, wl-copy, xclip or xsel)")
			}
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
		copied = true
	}

	if humanOutput {
		printRunHuman(res, sections, copied)
		return nil
	}

	return outputJSON(RunResponse{
		SectionCount:   res.SectionCount,
		ReferenceCount: res.ReferenceCount,
		Sections:       sections,
		Copied:         copied,
	})
}

func printRunHuman(res *guide.Result, sections []guide.SectionResult, copied bool) {
	outputHuman("Found %d sections and %d references in the bibliography.\n\n", res.SectionCount, res.ReferenceCount)

	for _, s := range sections {
		outputHuman("%s\n", rule(fmt.Sprintf("Section %d: %s", s.Index, s.Preview)))
		outputHuman("%s\n", strings.TrimRight(s.Prompt, "\n"))
		outputHuman("\n")
	}

	if copied {
		outputHuman("Copied section %d prompt to clipboard.\n", sections[0].Index)
	}
}
