package domain

import (
	"fmt"
	"strings"

	"github.com/oggyb/muzz-discovery/internal/geo"
)

// IntRange is an inclusive range; a nil bound is unbounded.
type IntRange struct {
	Min *int
	Max *int
}

// Active reports whether the range restricts anything.
func (r IntRange) Active() bool { return r.Min != nil || r.Max != nil }

// FloatRange is an inclusive range; a nil bound is unbounded.
type FloatRange struct {
	Min *float64
	Max *float64
}

func (r FloatRange) Active() bool { return r.Min != nil || r.Max != nil }

// Filter is a structured discovery filter: OR within each inclusion list,
// AND across attributes. Empty lists and unbounded ranges pass everything.
type Filter struct {
	Genders   []Gender
	BodyTypes []BodyType
	Races     []Race
	JobTypes  []JobType

	Age    IntRange
	Price  FloatRange
	Rating FloatRange
}

// SortKey selects the primary ranking key.
type SortKey string

const (
	SortDistance      SortKey = "DISTANCE"
	SortLowestPrice   SortKey = "LOWEST_PRICE"
	SortHighestRating SortKey = "HIGHEST_RATING"
	// SortNewest orders by freshness only. It is the explicit fallback for
	// callers without a location.
	SortNewest SortKey = "NEWEST"
)

// ParseSortKey accepts the canonical upper-case names.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToUpper(strings.TrimSpace(s))); k {
	case SortDistance, SortLowestPrice, SortHighestRating, SortNewest:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrUnsupportedSort, s)
}

// GeoQuery is what the geo index adapter needs to resolve candidates.
type GeoQuery struct {
	EntityType EntityType
	Origin     *geo.Point
	// RadiusKm of 0 means unbounded.
	RadiusKm float64
}

// Query is one discovery request against a single vertical.
type Query struct {
	EntityType EntityType
	Origin     *geo.Point
	// RadiusKm of 0 means unbounded.
	RadiusKm float64
	Filter   Filter
	SortKey  SortKey
	// FallbackSort is used instead of SortKey when Origin is nil and SortKey
	// needs one. Leaving it empty makes such queries fail with ErrMissingLocation.
	FallbackSort SortKey

	Page     int
	PageSize int
	// Cursor, when set, takes precedence over Page and PageSize.
	Cursor string
}

// Page is one slice of a ranked sequence.
type Page struct {
	Items      []Candidate
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	HasMore    bool
	NextCursor string
}
