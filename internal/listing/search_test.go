package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ls []Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return out
}

func TestSearch_SortsByRatingDescending(t *testing.T) {
	in := []Listing{{Name: "A", Rating: 4.5}, {Name: "B", Rating: 4.9}}

	got := Search(in, Query{Sort: SortRating})

	assert.Equal(t, []string{"B", "A"}, names(got))
	assert.Equal(t, "A", in[0].Name, "input must not be reordered")
}

func TestSearch_DefaultSortIsRating(t *testing.T) {
	in := []Listing{{Name: "A", Rating: 4.5}, {Name: "B", Rating: 4.9}}

	assert.Equal(t, []string{"B", "A"}, names(Search(in, Query{})))
}

func TestSearch_FiltersByCity(t *testing.T) {
	in := []Listing{
		{Name: "Pune Place", City: "Pune"},
		{Name: "Mumbai Place", City: "Mumbai"},
	}

	got := Search(in, Query{City: "Pune"})

	require.Len(t, got, 1)
	assert.Equal(t, "Pune Place", got[0].Name)
}

func TestSearch_CityIsExactMatch(t *testing.T) {
	in := []Listing{{Name: "Pune Place", City: "Pune"}}

	assert.Empty(t, Search(in, Query{City: "pune"}))
}

func TestSearch_TextIsCaseInsensitive(t *testing.T) {
	in := []Listing{
		{Name: "Corner Spot", Category: "Cafe"},
		{Name: "Iron Works", Category: "Gym"},
		{Name: "Tea House", Category: "Restaurant", Subcategory: "CAFE style"},
	}

	got := Search(in, Query{Text: "cafe"})

	assert.ElementsMatch(t, []string{"Corner Spot", "Tea House"}, names(got))
}

func TestSearch_CategoryEqualsIgnoringCase(t *testing.T) {
	in := []Listing{
		{Name: "One", Category: "Cafe"},
		{Name: "Two", Category: "Cafe Bar"},
	}

	got := Search(in, Query{Category: "cafe"})

	assert.Equal(t, []string{"One"}, names(got))
}

func TestSearch_ReviewsSortIsStable(t *testing.T) {
	in := []Listing{
		{Name: "A", ReviewsCount: 10},
		{Name: "B", ReviewsCount: 50},
		{Name: "C", ReviewsCount: 10},
		{Name: "D", ReviewsCount: 50},
	}

	for _, key := range []SortKey{SortReviews, SortReviewCount} {
		got := Search(in, Query{Sort: key})
		assert.Equal(t, []string{"B", "D", "A", "C"}, names(got), "sort %s", key)
	}
}

func TestSearch_UnknownSortKeepsInputOrder(t *testing.T) {
	in := []Listing{{Name: "A", Rating: 1}, {Name: "B", Rating: 5}}

	assert.Equal(t, []string{"A", "B"}, names(Search(in, Query{Sort: "name"})))
}

func TestSearch_IsIdempotent(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	q := Query{Text: "cafe", Sort: SortRating}
	first := c.Search(q)
	second := Search(first, q)

	assert.Equal(t, names(first), names(second))
}

func TestSearch_EmptyInput(t *testing.T) {
	assert.Empty(t, Search(nil, Query{Text: "x"}))
}
