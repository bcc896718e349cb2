// Package prompt renders the per-section prompt that pairs a guideline
// section with the bibliography entries it cites.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// DefaultText is the built-in prompt template.
const DefaultText = `Act as a clinical expert and advanced Obsidian user. Analyse the following section of the guideline and create an Obsidian page formatted as follows:
YAML header: include id (format GUIDE-X.X-Name), type: guideline-section, guideline, domain, section, tags and linked_paragraphs.
Structure:
Use a > [!abstract] Overview callout for a short summary.
Translate the section text and insert the references, listed again at the end of the page.
Use clear subheadings (H2, H3).
Use styling and emoji to highlight the important points.
Linking logic: wherever a numeric reference appears in the text (e.g. [27]), replace it with a link of the form [[GUIDE-AUTHOR-YEAR]]. Take the author and year from the bibliography below.
Language: keep established medical terms.

---
SECTION TEXT{{if .Heading}} ({{.Heading}}){{end}}:
{{.Section}}

---
RELEVANT REFERENCES:
{{.References}}
`

// Data is the input to a prompt template.
type Data struct {
	Index      int    // 1-based position of the section
	Heading    string // numeric heading token, "" for a preamble
	Section    string // section text
	References string // formatted bibliography block
}

// Template is a parsed prompt template.
type Template struct {
	tmpl *template.Template
}

// Default returns the built-in template.
func Default() *Template {
	return &Template{tmpl: template.Must(template.New("prompt").Parse(DefaultText))}
}

// Parse compiles a template from text.
func Parse(text string) (*Template, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template: %w", err)
	}
	return &Template{tmpl: t}, nil
}

// Load reads and compiles a template file. An empty path returns Default.
func Load(path string) (*Template, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompt template: %w", err)
	}
	return Parse(string(data))
}

// Render executes the template for one section.
func (t *Template) Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering prompt for section %d: %w", d.Index, err)
	}
	return buf.String(), nil
}
