package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/oggyb/muzz-discovery/internal/app"
	"github.com/oggyb/muzz-discovery/internal/cache"
	"github.com/oggyb/muzz-discovery/internal/config"
	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/discovery"
	"github.com/oggyb/muzz-discovery/internal/logger"
	"github.com/oggyb/muzz-discovery/internal/repository/pgindex"
	"github.com/oggyb/muzz-discovery/internal/server"
	discoverysvc "github.com/oggyb/muzz-discovery/internal/service/discovery"
	swipesvc "github.com/oggyb/muzz-discovery/internal/service/swipe"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}
	sqlDB, err := database.DB()
	if err != nil {
		log.Error("failed to get sql handle", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if cfg.App.ENV == "development" {
		if err := db.SeedDemo(database, log, 50, time.Now().UnixNano()); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	// Optional Postgres geo replica
	var index discovery.GeoIndex
	checks := []server.Check{
		{Name: "db", Check: sqlDB.PingContext},
		{Name: "redis", Check: redisCache.Ping},
	}
	if cfg.Postgres.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("failed to init postgres pool", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		index = pgindex.New(pool)
		checks = append(checks, server.Check{Name: "postgres", Check: pool.Ping})
		log.Info("geo queries served by postgres replica")
	}

	appCtx := app.New(cfg, database, redisCache, log, index)

	grpcServer, grpcErr, err := server.StartGRPCServer(cfg, log,
		discoverysvc.NewRegistrar(appCtx),
		swipesvc.NewRegistrar(appCtx),
	)
	if err != nil {
		log.Error("failed to start gRPC server", "err", err)
		os.Exit(1)
	}
	log.Info("gRPC server started", "addr", cfg.GRPC.Host+":"+cfg.GRPC.Port)

	admin := server.NewAdminServer(log, checks...)
	adminErr := make(chan error, 1)
	go func() {
		adminErr <- admin.Start(cfg.Admin.Addr)
	}()
	log.Info("admin server started", "addr", cfg.Admin.Addr)

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-grpcErr:
		log.Error("gRPC server stopped", "err", err)
	case err := <-adminErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("admin server stopped", "err", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := admin.Shutdown(shutdownCtx); err != nil {
		log.Warn("admin shutdown failed", "err", err)
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}
	log.Info("server stopped")
}
