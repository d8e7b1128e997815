package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "@tcp(localhost:3306)/muzz")
	assert.Equal(t, 20, cfg.Discovery.DefaultPageSize)
	assert.Equal(t, 50, cfg.Discovery.MaxPageSize)
	assert.Equal(t, 30*time.Second, cfg.Discovery.SnapshotTTL)
	assert.Equal(t, 24*time.Hour, cfg.Seen.TTL)
	assert.Equal(t, "discovery", cfg.Log.Component)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_DSN", "file::memory:")
	t.Setenv("DISCOVERY_MAX_PAGE_SIZE", "25")
	t.Setenv("SEEN_TTL", "90m")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("LOG_SOURCE", "yes")

	cfg := New()

	assert.Equal(t, "file::memory:", cfg.DB.DSN)
	assert.Equal(t, 25, cfg.Discovery.MaxPageSize)
	assert.Equal(t, 90*time.Minute, cfg.Seen.TTL)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.Log.Source)
}
