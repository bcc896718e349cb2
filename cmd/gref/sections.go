package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/gref/internal/config"
	"github.com/matsen/gref/internal/guide"
	"github.com/matsen/gref/internal/input"
	"github.com/matsen/gref/internal/section"
)

var sectionsFull bool

func init() {
	sectionsCmd.Flags().BoolVar(&sectionsFull, "full", false, "Include the full section text")
	rootCmd.AddCommand(sectionsCmd)
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Split a guideline into numbered sections",
	Long: `Split a guideline into numbered sections.

A section starts at every line beginning with a heading number such as
"3 ", "3.1 " or "3.1.2 ". Text before the first heading is its own section.

Usage:
  gref sections guide.txt
  gref sections guide.pdf --full
  cat guide.txt | gref sections - --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

// SectionInfo describes one section in the sections response.
type SectionInfo struct {
	Index   int    `json:"index"`
	Heading string `json:"heading,omitempty"`
	Preview string `json:"preview"`
	Text    string `json:"text,omitempty"`
}

// SectionsResponse is the JSON response for the sections command.
type SectionsResponse struct {
	Count    int           `json:"count"`
	Sections []SectionInfo `json:"sections"`
}

func runSections(cmd *cobra.Command, args []string) error {
	text, err := input.NewReader().Read(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	resp := buildSectionsResponse(section.Split(text), previewLength(cfg), sectionsFull)

	if humanOutput {
		outputHuman("Found %d sections.\n\n", resp.Count)
		for _, s := range resp.Sections {
			outputHuman("%3d. %s\n", s.Index, s.Preview)
			if s.Text != "" {
				outputHuman("\n%s\n\n", s.Text)
			}
		}
		return nil
	}
	return outputJSON(resp)
}

func buildSectionsResponse(sections []string, previewLen int, full bool) SectionsResponse {
	resp := SectionsResponse{
		Count:    len(sections),
		Sections: make([]SectionInfo, 0, len(sections)),
	}
	for i, s := range sections {
		info := SectionInfo{
			Index:   i + 1,
			Heading: section.Heading(s),
			Preview: guide.Preview(s, previewLen),
		}
		if full {
			info.Text = s
		}
		resp.Sections = append(resp.Sections, info)
	}
	return resp
}

func previewLength(c *config.Config) int {
	if c != nil && c.PreviewLength > 0 {
		return c.PreviewLength
	}
	return guide.DefaultPreviewLength
}
