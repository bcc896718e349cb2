// Package section splits guideline text into flat, numbered sections.
package section

import (
	"regexp"
	"strings"
)

// headingRe matches a heading token at the start of a line: "2 ", "2.1 ",
// "2.1.3 ". The token must be followed by whitespace (Unicode spaces
// included), so "2.1.3.4 " and "2. " do not start a section.
var headingRe = regexp.MustCompile(`(?m)^(\d+(?:\.\d+){0,2})[\s\p{Z}]`)

// Split returns the sections of text in document order.
// A section starts at every heading line and runs to the next one. Text
// before the first heading becomes its own section. Each section is trimmed
// and sections that are empty after trimming are dropped.
func Split(text string) []string {
	var sections []string

	start := 0
	for _, loc := range headingRe.FindAllStringIndex(text, -1) {
		if loc[0] == 0 {
			continue
		}
		sections = appendTrimmed(sections, text[start:loc[0]])
		start = loc[0]
	}
	return appendTrimmed(sections, text[start:])
}

func appendTrimmed(sections []string, chunk string) []string {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return sections
	}
	return append(sections, chunk)
}

// Heading returns the numeric heading token a section starts with
// ("2.1" for "2.1 Diagnosis..."), or "" when the section has none.
func Heading(section string) string {
	m := headingRe.FindStringSubmatchIndex(section)
	if m == nil || m[0] != 0 {
		return ""
	}
	return section[m[2]:m[3]]
}
