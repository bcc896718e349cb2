// Package guide runs a full pass over a guideline and its bibliography:
// split into sections, find the references each section cites, and render
// a prompt per section.
package guide

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/gref/internal/bibliography"
	"github.com/matsen/gref/internal/extract"
	"github.com/matsen/gref/internal/prompt"
	"github.com/matsen/gref/internal/section"
)

// DefaultPreviewLength is the number of bytes of section text shown in a preview.
const DefaultPreviewLength = 100

var (
	// ErrEmptyGuide is returned when the guideline text is blank.
	ErrEmptyGuide = errors.New("guideline text is empty")
	// ErrEmptyBibliography is returned when the bibliography text is blank.
	ErrEmptyBibliography = errors.New("bibliography text is empty")
)

// Options configures a Run. The zero value is usable.
type Options struct {
	Extractor     *extract.Extractor // nil means extract.Default()
	Template      *prompt.Template   // nil means prompt.Default()
	PreviewLength int                // <= 0 means DefaultPreviewLength
	Logger        *zap.Logger        // nil means no logging
}

// SectionResult is one section paired with the references it cites.
type SectionResult struct {
	Index      int      `json:"index"`
	Heading    string   `json:"heading,omitempty"`
	Preview    string   `json:"preview"`
	Text       string   `json:"text"`
	References []string `json:"references"`
	Block      string   `json:"bibliography"`
	Prompt     string   `json:"prompt"`
}

// Result is the output of a Run.
type Result struct {
	SectionCount   int             `json:"section_count"`
	ReferenceCount int             `json:"reference_count"`
	Sections       []SectionResult `json:"sections"`
}

// Run processes a guideline and its bibliography. Both inputs must be
// non-blank; malformed content otherwise degrades silently.
func Run(guideText, bibText string, opts Options) (*Result, error) {
	if strings.TrimSpace(guideText) == "" {
		return nil, ErrEmptyGuide
	}
	if strings.TrimSpace(bibText) == "" {
		return nil, ErrEmptyBibliography
	}

	opts = opts.withDefaults()
	log := opts.Logger

	bib := bibliography.Parse(bibText)
	validKeys := bib.Keys()
	sections := section.Split(guideText)

	log.Debug("parsed inputs",
		zap.Int("sections", len(sections)),
		zap.Int("bibliography_entries", len(bib)))

	result := &Result{
		SectionCount:   len(sections),
		ReferenceCount: len(bib),
		Sections:       make([]SectionResult, 0, len(sections)),
	}

	for i, text := range sections {
		sr, err := buildSection(i+1, text, bib, validKeys, opts)
		if err != nil {
			return nil, err
		}
		log.Debug("section processed",
			zap.Int("index", sr.Index),
			zap.String("heading", sr.Heading),
			zap.Int("references", len(sr.References)))
		result.Sections = append(result.Sections, sr)
	}

	return result, nil
}

func buildSection(index int, text string, bib bibliography.Bibliography, validKeys bibliography.KeySet, opts Options) (SectionResult, error) {
	refs := opts.Extractor.Extract(text, validKeys)
	block := bibliography.Block(refs, bib)
	heading := section.Heading(text)

	rendered, err := opts.Template.Render(prompt.Data{
		Index:      index,
		Heading:    heading,
		Section:    text,
		References: block,
	})
	if err != nil {
		return SectionResult{}, err
	}

	return SectionResult{
		Index:      index,
		Heading:    heading,
		Preview:    Preview(text, opts.PreviewLength),
		Text:       text,
		References: refs.Sorted(),
		Block:      block,
		Prompt:     rendered,
	}, nil
}

func (o Options) withDefaults() Options {
	if o.Extractor == nil {
		e := extract.Default()
		o.Extractor = &e
	}
	if o.Template == nil {
		o.Template = prompt.Default()
	}
	if o.PreviewLength <= 0 {
		o.PreviewLength = DefaultPreviewLength
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
