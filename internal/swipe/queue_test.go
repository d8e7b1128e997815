package swipe

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
	"github.com/oggyb/muzz-discovery/internal/repository"
)

var sydney = geo.Point{Lat: -33.87, Lon: 151.21}

// seedProfiles stores profiles 1..n, each 0.01° further south of Sydney.
func seedProfiles(t *testing.T, f *fixture, n int) {
	t.Helper()
	cs := make([]domain.Candidate, 0, n)
	for i := 1; i <= n; i++ {
		cs = append(cs, domain.Candidate{
			ID:         uint64(i),
			EntityType: domain.EntityProfile,
			Location:   &geo.Point{Lat: sydney.Lat - 0.01*float64(i), Lon: sydney.Lon},
			FreshAt:    time.Date(2026, 9, i, 0, 0, 0, 0, time.UTC),
		})
	}
	require.NoError(t, repository.NewCandidateRepository(f.db).Upsert(context.Background(), cs))
}

func TestRefillSkipsSelfDecidedAndSeen(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seedProfiles(t, f, 8)

	_, err := f.recorder.Record(ctx, pass(1, 3))
	require.NoError(t, err)
	require.NoError(t, f.tracker.MarkSeen(ctx, 1, "s1", []uint64{4}))

	req := RefillRequest{ViewerID: 1, SessionID: "s1", Origin: &sydney, RadiusKm: 50, Size: 3}

	first, err := f.queue.Refill(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 5, 6}, domain.CandidateIDs(first))

	second, err := f.queue.Refill(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 8}, domain.CandidateIDs(second))

	third, err := f.queue.Refill(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, third)

	// a new session starts from scratch, decisions still apply
	req.SessionID = "s2"
	fresh, err := f.queue.Refill(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 4, 5}, domain.CandidateIDs(fresh))
}

func TestConcurrentRefillsNeverOverlap(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seedProfiles(t, f, 6)

	req := RefillRequest{ViewerID: 1, SessionID: "tabs", Origin: &sydney, Size: 3}

	var (
		wg      sync.WaitGroup
		results [2][]domain.Candidate
	)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			results[i], err = f.queue.Refill(ctx, req)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all := append(domain.CandidateIDs(results[0]), domain.CandidateIDs(results[1])...)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5, 6}, all)
}

func TestRefillWithoutLocation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seedProfiles(t, f, 4)

	_, err := f.queue.Refill(ctx, RefillRequest{ViewerID: 1, SessionID: "s", Size: 2})
	assert.ErrorIs(t, err, domain.ErrMissingLocation)

	got, err := f.queue.Refill(ctx, RefillRequest{ViewerID: 1, SessionID: "s", Size: 2, AllowNoLocation: true})
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 3}, domain.CandidateIDs(got), "freshest first")
}

func TestRefillValidatesIdentity(t *testing.T) {
	f := setup(t)

	_, err := f.queue.Refill(context.Background(), RefillRequest{SessionID: "s", Origin: &sydney})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = f.queue.Refill(context.Background(), RefillRequest{ViewerID: 1, Origin: &sydney})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
