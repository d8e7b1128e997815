package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		Driver   string
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	// Postgres is an optional read replica serving geo queries through pgx.
	Postgres struct {
		DSN string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host string
		Port string
	}

	Admin struct {
		Addr string
	}

	Discovery struct {
		DefaultPageSize int
		MaxPageSize     int
		SnapshotSize    int
		SnapshotTTL     time.Duration
	}

	Seen struct {
		TTL time.Duration
	}

	Queue struct {
		DefaultSize int
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "production")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "discovery")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = getEnvDefault("DB_DRIVER", "mysql")
	cfg.DB.DSN = os.Getenv("MYSQL_DSN")
	if cfg.DB.Driver == "sqlite" {
		cfg.DB.DSN = getEnvDefault("SQLITE_DSN", "file:discovery.db?cache=shared")
	}
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "muzz")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	cfg.Postgres.DSN = os.Getenv("GEO_POSTGRES_DSN")

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	// Admin HTTP (health + metrics)
	cfg.Admin.Addr = getEnvDefault("ADMIN_ADDR", "127.0.0.1:9090")

	// Discovery
	cfg.Discovery.DefaultPageSize = getEnvInt("DISCOVERY_DEFAULT_PAGE_SIZE", 20)
	cfg.Discovery.MaxPageSize = getEnvInt("DISCOVERY_MAX_PAGE_SIZE", 50)
	cfg.Discovery.SnapshotSize = getEnvInt("DISCOVERY_SNAPSHOT_SIZE", 1024)
	cfg.Discovery.SnapshotTTL = getEnvDuration("DISCOVERY_SNAPSHOT_TTL", 30*time.Second)

	// Seen sets
	cfg.Seen.TTL = getEnvDuration("SEEN_TTL", 24*time.Hour)

	// Swipe queue
	cfg.Queue.DefaultSize = getEnvInt("QUEUE_DEFAULT_SIZE", 10)

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnvDefault(k, "")); err == nil {
		return n
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnvDefault(k, "")); err == nil {
		return d
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
