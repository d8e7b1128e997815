package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/repository"
)

func TestInsertMatchIsCanonicalAndUnique(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	repo := repository.NewMatchRepository(database)

	created, err := repo.InsertMatch(ctx, 9, 4)
	require.NoError(t, err)
	assert.True(t, created)

	// same pair from the other side hits the primary key
	created, err = repo.InsertMatch(ctx, 4, 9)
	require.NoError(t, err)
	assert.False(t, created)

	var rows []db.Match
	require.NoError(t, database.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(4), rows[0].UserA)
	assert.Equal(t, uint64(9), rows[0].UserB)

	for _, pair := range [][2]uint64{{4, 9}, {9, 4}} {
		ok, err := repo.Exists(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := repo.Exists(ctx, 4, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListAndCountMatchesForUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDB(t))

	// user 5 matched with 1, 8, 3 in that order; 2↔3 is unrelated
	for _, peer := range []uint64{1, 8, 3} {
		_, err := repo.InsertMatch(ctx, 5, peer)
		require.NoError(t, err)
	}
	_, _ = repo.InsertMatch(ctx, 2, 3)

	count, err := repo.CountForUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	first, next, err := repo.ListForUser(ctx, 5, "", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	peer, _ := first[0].Peer(5)
	assert.Equal(t, uint64(3), peer, "newest first")
	peer, _ = first[1].Peer(5)
	assert.Equal(t, uint64(8), peer)
	require.NotEmpty(t, next)

	second, next, err := repo.ListForUser(ctx, 5, next, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	peer, _ = second[0].Peer(5)
	assert.Equal(t, uint64(1), peer)
	assert.Empty(t, next)
}

func TestListMatchesPagesSubMillisecondTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDBWithStep(t, 300*time.Microsecond))

	for peer := uint64(1); peer <= 10; peer++ {
		_, err := repo.InsertMatch(ctx, 50, peer)
		require.NoError(t, err)
	}

	var got []uint64
	token := ""
	for pages := 0; pages < 10; pages++ {
		matches, next, err := repo.ListForUser(ctx, 50, token, 3)
		require.NoError(t, err)
		for _, m := range matches {
			peer, _ := m.Peer(50)
			got = append(got, peer)
		}
		if next == "" {
			break
		}
		token = next
	}
	assert.Equal(t, []uint64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, got)
}
