// Package bibliography parses numbered bibliography lists and renders the
// subset of entries cited by a guideline section.
package bibliography

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// maxLineCapacity is the maximum buffer size for a single bibliography line.
const maxLineCapacity = 1024 * 1024

// entryRe matches "12 Author A, Title...", "12\tAuthor A, Title..." or a
// number followed by a no-break space, as PDF copy-paste often leaves.
var entryRe = regexp.MustCompile(`^(\d+)[\s\p{Z}]+(.*)`)

const byteOrderMark = "\ufeff"


// Bibliography maps a citation number, as written in the source, to its entry text.
type Bibliography map[string]string

// KeySet is a set of citation numbers.
type KeySet map[string]struct{}

// Parse builds a Bibliography from raw multi-line text.
// Lines that do not start with a number followed by whitespace are skipped,
// so a citation must sit on a single line. A repeated number overwrites the
// earlier entry.
func Parse(text string) Bibliography {
	bib := make(Bibliography)
	for _, line := range strings.Split(text, "\n") {
		bib.addLine(line)
	}
	return bib
}

// ParseReader is like Parse but streams lines from r.
func ParseReader(r io.Reader) (Bibliography, error) {
	bib := make(Bibliography)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineCapacity)

	for scanner.Scan() {
		bib.addLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	return bib, nil
}

func (b Bibliography) addLine(line string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, byteOrderMark))
	if line == "" {
		return
	}
	m := entryRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	b[m[1]] = m[2]
}

// Keys returns the citation numbers present in the bibliography.
func (b Bibliography) Keys() KeySet {
	keys := make(KeySet, len(b))
	for k := range b {
		keys[k] = struct{}{}
	}
	return keys
}

// NewKeySet builds a KeySet from the given numbers.
func NewKeySet(nums ...string) KeySet {
	s := make(KeySet, len(nums))
	for _, n := range nums {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether n is in the set.
func (s KeySet) Has(n string) bool {
	_, ok := s[n]
	return ok
}

// Add inserts n into the set.
func (s KeySet) Add(n string) {
	s[n] = struct{}{}
}

// Sorted returns the members of the set in ascending numeric order.
func (s KeySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	SortNumeric(out)
	return out
}
