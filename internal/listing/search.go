package listing

import (
	"slices"
	"strings"
)

type SortKey string

const (
	SortRating      SortKey = "rating"
	SortReviews     SortKey = "reviews"
	SortReviewCount SortKey = "review_count"
)

type Query struct {
	Text     string
	Category string
	City     string
	Sort     SortKey
}

// Search returns the listings matching q, stably ordered by q.Sort (rating when empty).
// The input slice is never modified.
//
// Text matches name, category or subcategory case-insensitively; Category must equal the
// listing category ignoring case; City must match exactly.
func Search(listings []Listing, q Query) []Listing {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	category := strings.TrimSpace(q.Category)
	city := strings.TrimSpace(q.City)

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if text != "" && !matchesText(l, text) {
			continue
		}
		if category != "" && !strings.EqualFold(l.Category, category) {
			continue
		}
		if city != "" && l.City != city {
			continue
		}
		out = append(out, l)
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortRating
	}

	switch sortKey {
	case SortRating:
		slices.SortStableFunc(out, func(a, b Listing) int {
			return compareDesc(a.Rating, b.Rating)
		})
	case SortReviews, SortReviewCount:
		slices.SortStableFunc(out, func(a, b Listing) int {
			return compareDesc(a.ReviewsCount, b.ReviewsCount)
		})
	}
	return out
}

func matchesText(l Listing, text string) bool {
	return strings.Contains(strings.ToLower(l.Name), text) ||
		strings.Contains(strings.ToLower(l.Category), text) ||
		strings.Contains(strings.ToLower(l.Subcategory), text)
}

func compareDesc[T int | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
