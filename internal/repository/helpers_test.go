package repository_test

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-discovery/internal/db"
)

// setupTestDB opens an isolated in-memory SQLite database with a ticking
// clock, so every insert gets a distinct, increasing created_at.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupTestDBWithStep(t, time.Second)
}

// setupTestDBWithStep is setupTestDB with a custom clock step.
func setupTestDBWithStep(t *testing.T, step time.Duration) *gorm.DB {
	t.Helper()

	var tick atomic.Int64
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return base.Add(time.Duration(tick.Add(1)) * step) },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	// one connection: every statement sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}
