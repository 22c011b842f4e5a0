package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venicelocal/internal/model"
	"venicelocal/internal/store"
)

func queryFixture() []model.Business {
	return []model.Business{
		{ID: "a", Name: "Seabreeze Café", Category: "Food", ShortDescription: "Beachy café with smoothies.", AverageRating: 4.5, Reviews: make([]model.Review, 2)},
		{ID: "b", Name: "Island Boutique", Category: "Retail", ShortDescription: "Coastal apparel.", AverageRating: 5, Reviews: make([]model.Review, 1)},
		{ID: "c", Name: "Gulfside Yoga Loft", Category: "Wellness", ShortDescription: "Sunrise yoga.", AverageRating: 4.5, Reviews: make([]model.Review, 2)},
		{ID: "d", Name: "Venice Gelato Co.", Category: "Food", ShortDescription: "Small-batch gelato.", AverageRating: 4.7, Reviews: make([]model.Review, 3)},
	}
}

func names(businesses []model.Business) []string {
	out := make([]string, len(businesses))
	for i, b := range businesses {
		out[i] = b.Name
	}
	return out
}

func TestFilterAndSort(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "all with empty search preserves count and order",
			query: Query{Category: CategoryAll, SortBy: SortNone},
			want:  []string{"Seabreeze Café", "Island Boutique", "Gulfside Yoga Loft", "Venice Gelato Co."},
		},
		{
			name:  "search matches name case-insensitively",
			query: Query{SearchTerm: "GELATO", Category: CategoryAll, SortBy: SortNone},
			want:  []string{"Venice Gelato Co."},
		},
		{
			name:  "search matches description",
			query: Query{SearchTerm: "smoothies", Category: CategoryAll, SortBy: SortNone},
			want:  []string{"Seabreeze Café"},
		},
		{
			name:  "category filter is exact",
			query: Query{Category: "Food", SortBy: SortNone},
			want:  []string{"Seabreeze Café", "Venice Gelato Co."},
		},
		{
			name:  "sort by rating descending is stable",
			query: Query{Category: CategoryAll, SortBy: SortRating},
			want:  []string{"Island Boutique", "Venice Gelato Co.", "Seabreeze Café", "Gulfside Yoga Loft"},
		},
		{
			name:  "sort by review count descending",
			query: Query{Category: CategoryAll, SortBy: SortReviews},
			want:  []string{"Venice Gelato Co.", "Seabreeze Café", "Gulfside Yoga Loft", "Island Boutique"},
		},
		{
			name:  "sort alphabetically",
			query: Query{Category: CategoryAll, SortBy: SortAlpha},
			want:  []string{"Gulfside Yoga Loft", "Island Boutique", "Seabreeze Café", "Venice Gelato Co."},
		},
		{
			name:  "no match",
			query: Query{SearchTerm: "pizza", Category: CategoryAll, SortBy: SortNone},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := queryFixture()
			got := FilterAndSort(input, tt.query)
			assert.Equal(t, tt.want, names(got))
			// Input order must be untouched.
			assert.Equal(t, []string{"Seabreeze Café", "Island Boutique", "Gulfside Yoga Loft", "Venice Gelato Co."}, names(input))
		})
	}
}

func TestFilterAndSortOnSeedCatalog(t *testing.T) {
	seed := store.SampleBusinesses()
	require.Len(t, seed, 5)

	got := FilterAndSort(seed, Query{SearchTerm: "gelato", Category: CategoryAll, SortBy: SortNone})
	require.Len(t, got, 1)
	assert.Equal(t, "Venice Gelato Co.", got[0].Name)

	all := FilterAndSort(seed, Query{Category: CategoryAll, SortBy: SortNone})
	assert.Len(t, all, 5)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortRating, ParseSortKey("rating"))
	assert.Equal(t, SortReviews, ParseSortKey("reviews"))
	assert.Equal(t, SortAlpha, ParseSortKey("alpha"))
	assert.Equal(t, SortNone, ParseSortKey(""))
	assert.Equal(t, SortNone, ParseSortKey("bogus"))
}
