package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"venicelocal/internal/model"
)

// SortKey selects the ordering of a filtered catalog view.
type SortKey string

const (
	// SortNone preserves input order.
	SortNone SortKey = "none"
	// SortRating orders by average rating, descending.
	SortRating SortKey = "rating"
	// SortReviews orders by review count, descending.
	SortReviews SortKey = "reviews"
	// SortAlpha orders by name ascending, locale-aware.
	SortAlpha SortKey = "alpha"
)

// ParseSortKey maps a raw string to a SortKey, defaulting to SortNone.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRating, SortReviews, SortAlpha:
		return SortKey(s)
	}
	return SortNone
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Query describes a catalog view: a case-insensitive search term matched
// against name or description, a category ("all" disables the filter),
// and a sort key.
type Query struct {
	SearchTerm string
	Category   string
	SortBy     SortKey
}

// FilterAndSort produces the businesses matching q, ordered by its sort
// key. It is a pure function: the input slice is never mutated and may
// be queried repeatedly with different parameters. All sorts are stable.
func FilterAndSort(businesses []model.Business, q Query) []model.Business {
	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))
	category := strings.TrimSpace(q.Category)
	if category == "" {
		category = CategoryAll
	}

	filtered := make([]model.Business, 0, len(businesses))
	for _, b := range businesses {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(b.Name), term) ||
			strings.Contains(strings.ToLower(b.ShortDescription), term)
		matchesCategory := category == CategoryAll || b.Category == category
		if matchesSearch && matchesCategory {
			filtered = append(filtered, b)
		}
	}

	switch q.SortBy {
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].AverageRating > filtered[j].AverageRating
		})
	case SortReviews:
		sort.SliceStable(filtered, func(i, j int) bool {
			return len(filtered[i].Reviews) > len(filtered[j].Reviews)
		})
	case SortAlpha:
		collator := collate.New(language.English)
		sort.SliceStable(filtered, func(i, j int) bool {
			return collator.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	case SortNone:
		// keep input order
	}

	return filtered
}
