// Package rank orders candidates by a sort key with a deterministic
// tie-break chain: freshness descending, then id ascending.
package rank

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/oggyb/muzz-discovery/internal/domain"
)

var legal = map[domain.EntityType][]domain.SortKey{
	domain.EntityProfile: {domain.SortDistance, domain.SortNewest},
	domain.EntityListing: {domain.SortDistance, domain.SortLowestPrice, domain.SortHighestRating, domain.SortNewest},
	domain.EntityContent: {domain.SortDistance, domain.SortLowestPrice, domain.SortNewest},
	domain.EntityJob:     {domain.SortDistance, domain.SortNewest},
	domain.EntityEvent:   {domain.SortDistance, domain.SortLowestPrice, domain.SortNewest},
}

// Legal fails with domain.ErrUnsupportedSort when key cannot rank et.
func Legal(et domain.EntityType, key domain.SortKey) error {
	if slices.Contains(legal[et], key) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot be sorted by %s", domain.ErrUnsupportedSort, et, key)
}

// Rank returns a sorted copy of cs. The input slice is left untouched.
func Rank(cs []domain.Candidate, key domain.SortKey) ([]domain.Candidate, error) {
	cmpFn, err := Comparator(key)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(cs)
	slices.SortFunc(out, cmpFn)
	return out, nil
}

// Comparator returns the total order for key. Two candidates compare equal
// only when they share an id.
func Comparator(key domain.SortKey) (func(a, b domain.Candidate) int, error) {
	var primary func(a, b domain.Candidate) int
	switch key {
	case domain.SortDistance:
		primary = byDistance
	case domain.SortLowestPrice:
		primary = byPrice
	case domain.SortHighestRating:
		primary = byRating
	case domain.SortNewest:
		primary = func(domain.Candidate, domain.Candidate) int { return 0 }
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", domain.ErrUnsupportedSort, key)
	}
	return func(a, b domain.Candidate) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		return tieBreak(a, b)
	}, nil
}

// tieBreak: most recently active first, then smaller id.
func tieBreak(a, b domain.Candidate) int {
	if c := b.FreshAt.Compare(a.FreshAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// candidates without a distance sort last
func byDistance(a, b domain.Candidate) int {
	return compareOptional(a.DistanceKm, b.DistanceKm, cmp.Compare[float64])
}

// candidates without a price sort last
func byPrice(a, b domain.Candidate) int {
	return compareOptional(a.Price, b.Price, cmp.Compare[float64])
}

// rated candidates by rating descending, then all unreviewed ones
func byRating(a, b domain.Candidate) int {
	aRated, bRated := a.ReviewCount > 0, b.ReviewCount > 0
	switch {
	case aRated && !bRated:
		return -1
	case !aRated && bRated:
		return 1
	case !aRated && !bRated:
		return 0
	}
	return cmp.Compare(b.Rating, a.Rating)
}

func compareOptional[T any](a, b *T, f func(x, y T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return f(*a, *b)
}
