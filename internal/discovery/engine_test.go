package discovery_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-discovery/internal/discovery"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
	"github.com/oggyb/muzz-discovery/internal/utils/pagination"
)

// sliceIndex is an in-memory GeoIndex over a fixed candidate set.
type sliceIndex struct {
	cs    []domain.Candidate
	calls atomic.Int32
	err   error
}

func (s *sliceIndex) Query(_ context.Context, q domain.GeoQuery) ([]domain.Candidate, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Candidate
	for _, c := range s.cs {
		if c.EntityType != q.EntityType {
			continue
		}
		if q.Origin != nil && c.Location != nil {
			d := geo.Haversine(*q.Origin, *c.Location)
			if q.RadiusKm > 0 && d > q.RadiusKm {
				continue
			}
			c.DistanceKm = &d
		} else if q.RadiusKm > 0 {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }

var (
	sydney = geo.Point{Lat: -33.87, Lon: 151.21}
	now    = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	quiet  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func profile(id uint64, g domain.Gender, age int, lat, lon float64) domain.Candidate {
	return domain.Candidate{
		ID:         id,
		EntityType: domain.EntityProfile,
		Gender:     g,
		Age:        ptr(age),
		Location:   &geo.Point{Lat: lat, Lon: lon},
		FreshAt:    now.Add(-time.Duration(id) * time.Minute),
	}
}

func sydneyProfiles() []domain.Candidate {
	return []domain.Candidate{
		profile(1, domain.GenderFemale, 25, -33.88, 151.20), // ~1 km
		profile(2, domain.GenderFemale, 30, -33.80, 151.10), // ~13 km
		profile(3, domain.GenderFemale, 40, -33.86, 151.21), // too old
		profile(4, domain.GenderMale, 28, -33.87, 151.22),   // wrong gender
		profile(5, domain.GenderFemale, 22, -33.60, 150.90), // ~41 km
		profile(6, domain.GenderFemale, 33, -34.92, 138.60), // Adelaide, out of radius
		profile(7, domain.GenderFemale, 21, -33.95, 151.25), // ~9.6 km
		profile(8, domain.GenderFemale, 35, -33.87, 151.21), // 0 km
		profile(9, domain.GenderFemale, 20, -33.87, 151.21), // too young
		profile(10, domain.GenderNonBinary, 30, -33.87, 151.21),
	}
}

func newEngine(idx discovery.GeoIndex) *discovery.Engine {
	return discovery.NewEngine(idx, discovery.Options{DefaultPageSize: 20, MaxPageSize: 50}, quiet)
}

func TestDiscover_SydneyExample(t *testing.T) {
	eng := newEngine(&sliceIndex{cs: sydneyProfiles()})

	page, err := eng.Discover(context.Background(), domain.Query{
		EntityType: domain.EntityProfile,
		Origin:     &sydney,
		RadiusKm:   50,
		Filter: domain.Filter{
			Genders: []domain.Gender{domain.GenderFemale},
			Age:     domain.IntRange{Min: ptr(21), Max: ptr(35)},
		},
		SortKey:  domain.SortDistance,
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(page.Items), 10)
	assert.Equal(t, []uint64{8, 1, 7, 2, 5}, domain.CandidateIDs(page.Items))
	prev := -1.0
	for _, c := range page.Items {
		require.NotNil(t, c.DistanceKm)
		assert.LessOrEqual(t, *c.DistanceKm, 50.0)
		assert.GreaterOrEqual(t, *c.DistanceKm, prev)
		assert.Equal(t, domain.GenderFemale, c.Gender)
		assert.GreaterOrEqual(t, *c.Age, 21)
		assert.LessOrEqual(t, *c.Age, 35)
		prev = *c.DistanceKm
	}
	assert.False(t, page.HasMore)
}

func TestDiscover_ValidationBeforeStoreAccess(t *testing.T) {
	idx := &sliceIndex{cs: sydneyProfiles()}
	eng := newEngine(idx)
	ctx := context.Background()

	cases := []struct {
		name string
		q    domain.Query
		want error
	}{
		{"bad range", domain.Query{EntityType: domain.EntityProfile, Origin: &sydney, SortKey: domain.SortDistance,
			Filter: domain.Filter{Age: domain.IntRange{Min: ptr(50), Max: ptr(20)}}}, domain.ErrInvalidFilter},
		{"unknown gender", domain.Query{EntityType: domain.EntityProfile, Origin: &sydney, SortKey: domain.SortDistance,
			Filter: domain.Filter{Genders: []domain.Gender{"x"}}}, domain.ErrInvalidFilter},
		{"negative radius", domain.Query{EntityType: domain.EntityProfile, Origin: &sydney, RadiusKm: -1,
			SortKey: domain.SortDistance}, domain.ErrInvalidFilter},
		{"distance without origin", domain.Query{EntityType: domain.EntityProfile, SortKey: domain.SortDistance},
			domain.ErrMissingLocation},
		{"radius without origin", domain.Query{EntityType: domain.EntityProfile, RadiusKm: 10, SortKey: domain.SortNewest},
			domain.ErrMissingLocation},
		{"rating on profiles", domain.Query{EntityType: domain.EntityProfile, Origin: &sydney, SortKey: domain.SortHighestRating},
			domain.ErrUnsupportedSort},
		{"unknown sort", domain.Query{EntityType: domain.EntityListing, Origin: &sydney, SortKey: "CHEAPEST"},
			domain.ErrUnsupportedSort},
		{"unknown entity", domain.Query{EntityType: "boat", Origin: &sydney, SortKey: domain.SortDistance},
			domain.ErrInvalidRequest},
		{"negative page", domain.Query{EntityType: domain.EntityProfile, Origin: &sydney, SortKey: domain.SortDistance, Page: -2},
			domain.ErrInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.Discover(ctx, tc.q)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Zero(t, idx.calls.Load(), "validation failures must not reach the store")
}

func TestDiscover_ExplicitFallbackSort(t *testing.T) {
	eng := newEngine(&sliceIndex{cs: sydneyProfiles()})

	page, err := eng.Discover(context.Background(), domain.Query{
		EntityType:   domain.EntityProfile,
		SortKey:      domain.SortDistance,
		FallbackSort: domain.SortNewest,
		PageSize:     3,
	})
	require.NoError(t, err)
	// freshest first: FreshAt decreases with id
	assert.Equal(t, []uint64{1, 2, 3}, domain.CandidateIDs(page.Items))
	assert.Nil(t, page.Items[0].DistanceKm)
}

func TestDiscover_CursorWalkAndStaleCursor(t *testing.T) {
	var listings []domain.Candidate
	for i := 1; i <= 12; i++ {
		listings = append(listings, domain.Candidate{
			ID:          uint64(i),
			EntityType:  domain.EntityListing,
			Price:       ptr(float64(100 - i)),
			Rating:      float64(i % 5),
			ReviewCount: i % 3,
			Location:    &geo.Point{Lat: -33.87, Lon: 151.21},
		})
	}
	eng := newEngine(&sliceIndex{cs: listings})
	ctx := context.Background()

	q := domain.Query{EntityType: domain.EntityListing, Origin: &sydney, SortKey: domain.SortLowestPrice, PageSize: 5}
	first, err := eng.Discover(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []uint64{12, 11, 10, 9, 8}, domain.CandidateIDs(first.Items))
	require.True(t, first.HasMore)

	next := q
	next.Cursor = first.NextCursor
	second, err := eng.Discover(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, []uint64{7, 6, 5, 4, 3}, domain.CandidateIDs(second.Items))

	// same cursor replayed with a different sort key
	stale := next
	stale.SortKey = domain.SortHighestRating
	_, err = eng.Discover(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrStaleCursor)

	// or a different filter
	stale = next
	stale.Filter = domain.Filter{Price: domain.FloatRange{Max: ptr(95.0)}}
	_, err = eng.Discover(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrStaleCursor)

	// a hand-built cursor with the right fingerprint but an absurd page
	issued, err := pagination.DecodePage(first.NextCursor)
	require.NoError(t, err)
	forged := q
	issued.Page = 1<<62 + 1
	forged.Cursor = pagination.EncodePage(issued)
	_, err = eng.Discover(ctx, forged)
	assert.ErrorIs(t, err, domain.ErrStaleCursor)

	issued.Page = 1 << 30
	forged.Cursor = pagination.EncodePage(issued)
	far, err := eng.Discover(ctx, forged)
	require.NoError(t, err)
	assert.Empty(t, far.Items)
	assert.False(t, far.HasMore)
}

func TestDiscover_SnapshotCacheServesRepeatQueries(t *testing.T) {
	idx := &sliceIndex{cs: sydneyProfiles()}
	eng := discovery.NewEngine(idx, discovery.Options{
		DefaultPageSize: 2, MaxPageSize: 50, SnapshotSize: 16, SnapshotTTL: time.Minute,
	}, quiet)
	ctx := context.Background()

	q := domain.Query{EntityType: domain.EntityProfile, Origin: &sydney, SortKey: domain.SortDistance}
	for page := 1; page <= 3; page++ {
		q.Page = page
		_, err := eng.Discover(ctx, q)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), idx.calls.Load())
}

func TestDiscover_StoreErrorsPropagateUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	eng := newEngine(&sliceIndex{err: boom})

	_, err := eng.Discover(context.Background(), domain.Query{
		EntityType: domain.EntityProfile, Origin: &sydney, SortKey: domain.SortDistance,
	})
	assert.ErrorIs(t, err, boom)
}

func TestFingerprint(t *testing.T) {
	f1 := domain.Filter{Genders: []domain.Gender{domain.GenderMale, domain.GenderFemale}}
	f2 := domain.Filter{Genders: []domain.Gender{domain.GenderFemale, domain.GenderMale, domain.GenderMale}}

	a := discovery.Fingerprint(domain.EntityProfile, f1, domain.SortDistance, &sydney, 50)
	b := discovery.Fingerprint(domain.EntityProfile, f2, domain.SortDistance, &sydney, 50)
	assert.Equal(t, a, b, "equivalent filters share a fingerprint")

	c := discovery.Fingerprint(domain.EntityProfile, f1, domain.SortDistance, &sydney, 51)
	assert.NotEqual(t, a, c)
	d := discovery.Fingerprint(domain.EntityProfile, f1, domain.SortDistance, nil, 50)
	assert.NotEqual(t, a, d)
	e := discovery.Fingerprint(domain.EntityProfile, domain.Filter{Age: domain.IntRange{Min: ptr(0)}}, domain.SortDistance, &sydney, 50)
	g := discovery.Fingerprint(domain.EntityProfile, domain.Filter{Age: domain.IntRange{Max: ptr(0)}}, domain.SortDistance, &sydney, 50)
	assert.NotEqual(t, e, g)
}
