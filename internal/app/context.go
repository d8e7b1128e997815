package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-discovery/internal/cache"
	"github.com/oggyb/muzz-discovery/internal/config"
	"github.com/oggyb/muzz-discovery/internal/discovery"
	"github.com/oggyb/muzz-discovery/internal/repository"
	"github.com/oggyb/muzz-discovery/internal/seen"
	"github.com/oggyb/muzz-discovery/internal/swipe"
	"github.com/oggyb/muzz-discovery/internal/validation"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
// and the domain components built on top of them.
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger

	Engine    *discovery.Engine
	Seen      *seen.Tracker
	Recorder  *swipe.Recorder
	Queue     *swipe.Queue
	Validator *validation.Validator
}

// New creates a new AppContext. index serves geo queries; nil means the
// primary SQL store.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, index discovery.GeoIndex) *AppContext {
	if index == nil {
		index = repository.NewCandidateRepository(db)
	}

	decisions := repository.NewDecisionRepository(db)
	engine := discovery.NewEngine(index, discovery.Options{
		DefaultPageSize: cfg.Discovery.DefaultPageSize,
		MaxPageSize:     cfg.Discovery.MaxPageSize,
		SnapshotSize:    cfg.Discovery.SnapshotSize,
		SnapshotTTL:     cfg.Discovery.SnapshotTTL,
	}, logger.With("module", "discovery"))
	tracker := seen.New(rdb, cfg.Seen.TTL)

	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Engine:     engine,
		Seen:       tracker,
		Recorder:   swipe.NewRecorder(decisions, repository.NewMatchRepository(db), rdb, logger.With("module", "swipe")),
		Queue:      swipe.NewQueue(engine, decisions, tracker, logger.With("module", "queue")),
		Validator:  validation.New(),
	}
}
