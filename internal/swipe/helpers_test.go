package swipe

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-discovery/internal/cache"
	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/discovery"
	"github.com/oggyb/muzz-discovery/internal/repository"
	"github.com/oggyb/muzz-discovery/internal/seen"
)

type fixture struct {
	db       *gorm.DB
	redis    *miniredis.Miniredis
	cache    *cache.RedisCache
	recorder *Recorder
	queue    *Queue
	tracker  *seen.Tracker
}

// setup wires a Recorder and Queue over in-memory SQLite and miniredis.
func setup(t *testing.T) *fixture {
	t.Helper()

	var tick atomic.Int64
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:swipe_%s?mode=memory&cache=shared", name)), &gorm.Config{
		NowFunc: func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Second) },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(database))

	mr := miniredis.RunT(t)
	rc := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = rc.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	decisions := repository.NewDecisionRepository(database)
	tracker := seen.New(rc, time.Hour)
	engine := discovery.NewEngine(repository.NewCandidateRepository(database), discovery.Options{
		DefaultPageSize: 5,
		MaxPageSize:     10,
	}, log)

	return &fixture{
		db:       database,
		redis:    mr,
		cache:    rc,
		recorder: NewRecorder(decisions, repository.NewMatchRepository(database), rc, log),
		queue:    NewQueue(engine, decisions, tracker, log),
		tracker:  tracker,
	}
}

func (f *fixture) matchRows(t *testing.T) []db.Match {
	t.Helper()
	var rows []db.Match
	require.NoError(t, f.db.Find(&rows).Error)
	return rows
}
