package reconcile

import (
	"strings"

	"golang.org/x/text/cases"
)

// Uncategorized names the category of records without one.
const Uncategorized = "Uncategorized"

// Normalize trims surrounding whitespace. Inner whitespace and line breaks
// are kept, so formatting-only differences still surface as mismatches.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Fold normalizes s and case-folds it for lookups.
func Fold(s string) string {
	// Casers carry state; one per call keeps Fold safe across goroutines
	return cases.Fold().String(Normalize(s))
}

// CategoryName normalizes a category name, defaulting to Uncategorized.
func CategoryName(s string) string {
	if n := Normalize(s); n != "" {
		return n
	}
	return Uncategorized
}

// CategorySet is a case-folded set of category names.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from names.
func NewCategorySet(names ...string) CategorySet {
	set := make(CategorySet, len(names))
	for _, n := range names {
		set[Fold(n)] = struct{}{}
	}
	return set
}

// Contains reports exact (case-folded) membership.
func (s CategorySet) Contains(name string) bool {
	_, ok := s[Fold(name)]
	return ok
}

// ContainsKeyword reports whether name contains any keyword, case-folded.
func ContainsKeyword(name string, keywords ...string) bool {
	folded := Fold(name)
	for _, k := range keywords {
		if strings.Contains(folded, Fold(k)) {
			return true
		}
	}
	return false
}
