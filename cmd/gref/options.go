package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/gref/internal/config"
	"github.com/matsen/gref/internal/extract"
	"github.com/matsen/gref/internal/guide"
	"github.com/matsen/gref/internal/input"
	"github.com/matsen/gref/internal/prompt"
)

// processFlags are shared by commands that process a guideline against a bibliography.
type processFlags struct {
	guidePath     string
	bibPath       string
	templatePath  string
	noStandalone  bool
	previewLength int
}

func (f *processFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.guidePath, "guide", "g", "", "Guideline text or PDF (- for stdin)")
	cmd.Flags().StringVarP(&f.bibPath, "bib", "b", "", "Bibliography text or PDF (- for stdin)")
	cmd.Flags().StringVar(&f.templatePath, "template", "", "Prompt template file (overrides config)")
	cmd.Flags().BoolVar(&f.noStandalone, "no-standalone", false, "Disable matching of standalone numbers")
	cmd.Flags().IntVar(&f.previewLength, "preview-length", 0, "Section preview length (overrides config)")
	cmd.MarkFlagRequired("guide")
	cmd.MarkFlagRequired("bib")
}

// options resolves flags over the loaded config into guide.Options.
func (f *processFlags) options(c *config.Config) (guide.Options, error) {
	e := extract.Default()
	e.Standalone = c.StandaloneEnabled() && !f.noStandalone

	templatePath := c.Template
	if f.templatePath != "" {
		templatePath = config.ExpandTilde(f.templatePath)
	}
	tmpl, err := prompt.Load(templatePath)
	if err != nil {
		return guide.Options{}, err
	}

	previewLength := c.PreviewLength
	if f.previewLength > 0 {
		previewLength = f.previewLength
	}

	return guide.Options{
		Extractor:     &e,
		Template:      tmpl,
		PreviewLength: previewLength,
		Logger:        logger,
	}, nil
}

// mustProcess reads both inputs and runs the pipeline, exiting on error.
func (f *processFlags) mustProcess() *guide.Result {
	if f.guidePath == input.Stdin && f.bibPath == input.Stdin {
		exitWithError(ExitError, "only one of --guide and --bib can read stdin")
	}

	opts, err := f.options(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	r := input.NewReader()
	guideText, err := r.Read(f.guidePath)
	if err != nil {
		exitWithError(ExitDataError, "reading guideline: %v", err)
	}
	bibText, err := r.Read(f.bibPath)
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}

	logger.Debug("inputs read",
		zap.String("guide", f.guidePath),
		zap.Int("guide_bytes", len(guideText)),
		zap.String("bib", f.bibPath),
		zap.Int("bib_bytes", len(bibText)))

	res, err := guide.Run(guideText, bibText, opts)
	if err != nil {
		if errors.Is(err, guide.ErrEmptyGuide) || errors.Is(err, guide.ErrEmptyBibliography) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return res
}

// selectSection narrows a result to the section with the given 1-based
// index. Zero keeps every section.
func selectSection(res *guide.Result, index int) ([]guide.SectionResult, error) {
	if index == 0 {
		return res.Sections, nil
	}
	if index < 0 || index > len(res.Sections) {
		return nil, errSectionRange(index, len(res.Sections))
	}
	return res.Sections[index-1 : index], nil
}

func errSectionRange(index, count int) error {
	if count == 0 {
		return fmt.Errorf("section %d out of range (no sections found)", index)
	}
	return fmt.Errorf("section %d out of range (1-%d)", index, count)
}
