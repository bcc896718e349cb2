package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var refsFlags processFlags

func init() {
	refsFlags.register(refsCmd)
	rootCmd.AddCommand(refsCmd)
}

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "List the bibliography numbers cited by each section",
	Long: `List the bibliography numbers cited by each section.

Usage:
  gref refs --guide guide.txt --bib refs.txt
  gref refs --guide guide.txt --bib refs.txt --no-standalone --human`,
	Args: cobra.NoArgs,
	RunE: runRefs,
}

// SectionRefs is one section's entry in the refs response.
type SectionRefs struct {
	Index      int      `json:"index"`
	Heading    string   `json:"heading,omitempty"`
	Preview    string   `json:"preview"`
	References []string `json:"references"`
}

// RefsResponse is the JSON response for the refs command.
type RefsResponse struct {
	SectionCount   int           `json:"section_count"`
	ReferenceCount int           `json:"reference_count"`
	Sections       []SectionRefs `json:"sections"`
}

func runRefs(cmd *cobra.Command, args []string) error {
	res := refsFlags.mustProcess()

	resp := RefsResponse{
		SectionCount:   res.SectionCount,
		ReferenceCount: res.ReferenceCount,
		Sections:       make([]SectionRefs, 0, len(res.Sections)),
	}
	for _, s := range res.Sections {
		resp.Sections = append(resp.Sections, SectionRefs{
			Index:      s.Index,
			Heading:    s.Heading,
			Preview:    s.Preview,
			References: s.References,
		})
	}

	if humanOutput {
		printRefsHuman(resp)
		return nil
	}
	return outputJSON(resp)
}

func printRefsHuman(resp RefsResponse) {
	outputHuman("Found %d sections and %d references in the bibliography.\n\n", resp.SectionCount, resp.ReferenceCount)
	for _, s := range resp.Sections {
		label := s.Heading
		if label == "" {
			label = "-"
		}
		refs := "none"
		if len(s.References) > 0 {
			refs = strings.Join(s.References, ", ")
		}
		outputHuman("%3d. [%s] %s\n     refs: %s\n", s.Index, label, s.Preview, refs)
	}
}
