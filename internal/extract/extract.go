// Package extract finds the bibliography numbers cited in a section of text.
//
// Three heuristics run independently and their results are unioned:
//
//   - bracket groups such as "[3, 5-7]" or "(12)", with ranges expanded
//   - digits glued to a preceding letter, as left by PDF copy-paste ("myocarditis27")
//   - standalone numbers of one to three digits
//
// A candidate only counts if it is a key of the bibliography; everything
// else (page numbers, doses, years) is dropped silently.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matsen/gref/internal/bibliography"
)

var (
	// bracketRe matches "[...]" or "(...)" holding only digits, whitespace
	// (including no-break and other Unicode spaces), commas and hyphens.
	bracketRe = regexp.MustCompile(`\[([\d\s\p{Z},\-]+)\]|\(([\d\s\p{Z},\-]+)\)`)

	// attachedRe matches a digit run directly after a letter.
	attachedRe = regexp.MustCompile(`\p{L}(\d+)`)

	// standaloneRe matches a one to three digit number on word boundaries.
	standaloneRe = regexp.MustCompile(`\b\d{1,3}\b`)

	digitsRe = regexp.MustCompile(`\d+`)
)

// Extractor selects which heuristics run. The zero value runs none; use
// Default for the standard configuration.
type Extractor struct {
	Brackets   bool
	Attached   bool
	Standalone bool
}

// Default returns an Extractor with every heuristic enabled.
//
// Standalone matching has no special case for calendar years: a year that
// coincides with a bibliography number is reported as a citation.
func Default() Extractor {
	return Extractor{Brackets: true, Attached: true, Standalone: true}
}

// Extract runs all heuristics over text and returns the cited keys.
func Extract(text string, validKeys bibliography.KeySet) bibliography.KeySet {
	return Default().Extract(text, validKeys)
}

// Extract returns the numbers cited in text that are present in validKeys.
func (e Extractor) Extract(text string, validKeys bibliography.KeySet) bibliography.KeySet {
	found := make(bibliography.KeySet)
	if len(validKeys) == 0 {
		return found
	}

	if e.Brackets {
		for _, m := range bracketRe.FindAllStringSubmatch(text, -1) {
			inner := m[1]
			if inner == "" {
				inner = m[2]
			}
			addBracketGroup(found, inner, validKeys)
		}
	}

	if e.Attached {
		for _, m := range attachedRe.FindAllStringSubmatch(text, -1) {
			addIfValid(found, m[1], validKeys)
		}
	}

	if e.Standalone {
		for _, n := range standaloneRe.FindAllString(text, -1) {
			addIfValid(found, n, validKeys)
		}
	}

	return found
}

// addBracketGroup handles the inside of one bracket group: every number in
// it, plus the inclusive range between the first and last number when the
// group contains a hyphen.
func addBracketGroup(found bibliography.KeySet, inner string, validKeys bibliography.KeySet) {
	nums := digitsRe.FindAllString(inner, -1)

	if strings.Contains(inner, "-") && len(nums) >= 2 {
		if start, end, ok := parseRange(nums[0], nums[len(nums)-1]); ok {
			addRange(found, start, end, validKeys)
		}
	}

	for _, n := range nums {
		addIfValid(found, n, validKeys)
	}
}

func parseRange(first, last string) (int, int, bool) {
	start, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(last)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// addRange adds every valid key n with start <= n <= end. Keys are matched
// in their canonical decimal form, so "05" is not picked up by a range.
// Ranges wider than the key set are resolved by walking the keys.
func addRange(found bibliography.KeySet, start, end int, validKeys bibliography.KeySet) {
	if start > end {
		return
	}
	if end-start < len(validKeys) {
		for i := 0; i <= end-start; i++ {
			addIfValid(found, strconv.Itoa(start+i), validKeys)
		}
		return
	}
	for k := range validKeys {
		n, err := strconv.Atoi(k)
		if err != nil || strconv.Itoa(n) != k {
			continue
		}
		if n >= start && n <= end {
			found.Add(k)
		}
	}
}

func addIfValid(found bibliography.KeySet, n string, validKeys bibliography.KeySet) {
	if validKeys.Has(n) {
		found.Add(n)
	}
}
