package guide

import (
	"strings"
	"unicode/utf8"
)

// Preview returns the first maxLen bytes of text on one line, followed by
// "...". The cut never splits a multi-byte character. A negative maxLen is
// treated as zero.
func Preview(text string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= maxLen {
		return text + "..."
	}

	validLen := maxLen
	for validLen > 0 && !utf8.RuneStart(text[validLen]) {
		validLen--
	}

	return text[:validLen] + "..."
}
