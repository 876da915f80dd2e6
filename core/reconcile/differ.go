package reconcile

import "fmt"

// CategoryTable maps downstream category ids to names.
type CategoryTable map[string]string

// NewCategoryTable indexes categories by id.
func NewCategoryTable(categories []DownstreamCategory) CategoryTable {
	t := make(CategoryTable, len(categories))
	for _, c := range categories {
		t[c.ID] = c.Name
	}
	return t
}

// NameOf returns the category name for id, or Uncategorized when the id is
// empty or unknown.
func (t CategoryTable) NameOf(id string) string {
	if id == "" {
		return Uncategorized
	}
	return CategoryName(t[id])
}

// Diff lists the field mismatches between a matched pair in fixed order:
// name, price, description, category, then (when compareImages is set)
// image presence. It has no side effects.
func Diff(src SourceRecord, dst DownstreamRecord, categories CategoryTable, compareImages bool) []string {
	diffs := []string{}

	if Normalize(src.Name) != Normalize(dst.Name) {
		diffs = append(diffs, fmt.Sprintf("Name mismatch: %s vs %s", Normalize(src.Name), Normalize(dst.Name)))
	}

	// Exact decimal equality; both sides hold major units
	if !src.Price.Equal(dst.Price) {
		diffs = append(diffs, fmt.Sprintf("Price mismatch: %s vs %s", src.Price.String(), dst.Price.String()))
	}

	if Normalize(src.Description) != Normalize(dst.Description) {
		diffs = append(diffs, "Description mismatch")
	}

	srcCategory := CategoryName(src.Category)
	dstCategory := categories.NameOf(dst.CategoryID)
	if Fold(srcCategory) != Fold(dstCategory) {
		diffs = append(diffs, fmt.Sprintf("Category mismatch: %s vs %s", srcCategory, dstCategory))
	}

	// Only a missing downstream image counts; extra downstream images are fine
	if compareImages && Normalize(src.ImageURL) != "" && Normalize(dst.ImageURL) == "" {
		diffs = append(diffs, "Image missing in Loyverse")
	}

	return diffs
}
