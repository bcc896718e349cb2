package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/gref/internal/bibliography"
	"github.com/matsen/gref/internal/input"
)

func init() {
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:   "bib <file>",
	Short: "Parse a numbered bibliography",
	Long: `Parse a numbered bibliography.

Each entry must sit on one line and start with its number followed by
whitespace ("12 Adler Y, ..."). Other lines are ignored. A number that
appears twice keeps its last entry.

Usage:
  gref bib refs.txt
  gref bib refs.pdf --human`,
	Args: cobra.ExactArgs(1),
	RunE: runBib,
}

// BibEntry is one bibliography entry in the bib response.
type BibEntry struct {
	Number  string `json:"number"`
	Content string `json:"content"`
}

// BibResponse is the JSON response for the bib command.
type BibResponse struct {
	Count   int        `json:"count"`
	Entries []BibEntry `json:"entries"`
}

func runBib(cmd *cobra.Command, args []string) error {
	rc, err := input.NewReader().Open(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	defer rc.Close()

	bib, err := bibliography.ParseReader(rc)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	resp := buildBibResponse(bib)

	if humanOutput {
		outputHuman("Found %d references.\n\n", resp.Count)
		for _, e := range resp.Entries {
			outputHuman("%5s  %s\n", e.Number, e.Content)
		}
		return nil
	}
	return outputJSON(resp)
}

func buildBibResponse(bib bibliography.Bibliography) BibResponse {
	resp := BibResponse{
		Count:   len(bib),
		Entries: make([]BibEntry, 0, len(bib)),
	}
	for _, n := range bib.Keys().Sorted() {
		resp.Entries = append(resp.Entries, BibEntry{Number: n, Content: bib[n]})
	}
	return resp
}
