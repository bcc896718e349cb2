package bibliography

import (
	"sort"
	"strings"
)

// NoReferencesFound is emitted in place of an empty reference list.
const NoReferencesFound = "No references found in this section."

// SortNumeric sorts digit strings by numeric value ("2" before "10").
// Values of any length are compared without conversion to int.
func SortNumeric(nums []string) {
	sort.SliceStable(nums, func(i, j int) bool {
		return lessNumeric(nums[i], nums[j])
	})
}

func lessNumeric(a, b string) bool {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) < len(tb)
	}
	if ta != tb {
		return ta < tb
	}
	// Same value, different zero padding ("5" vs "05").
	return a < b
}

// Entries formats the cited entries as "n: content" in numeric order.
// An empty key set yields the single NoReferencesFound line.
func Entries(keys KeySet, bib Bibliography) []string {
	if len(keys) == 0 {
		return []string{NoReferencesFound}
	}

	lines := make([]string, 0, len(keys))
	for _, n := range keys.Sorted() {
		lines = append(lines, n+": "+bib[n])
	}
	return lines
}

// Block joins Entries with newlines.
func Block(keys KeySet, bib Bibliography) string {
	return strings.Join(Entries(keys, bib), "\n")
}
