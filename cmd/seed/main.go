package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/oggyb/muzz-discovery/internal/config"
	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/logger"
)

var (
	perVertical int
	randSeed    int64
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into the discovery database",
	Long: `Load demo data into the discovery database.

Configuration is read from the environment (and .env when present), the same
way the server reads it.

Examples:
  seed demo --per-vertical 200   # Random candidates, swipes and matches
  seed minimal                   # Small deterministic fixture`,
	SilenceUsage: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Reset and seed random candidates in every vertical plus swipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *gorm.DB, log *slog.Logger) error {
			return db.SeedDemo(database, log, perVertical, randSeed)
		})
	},
}

var minimalCmd = &cobra.Command{
	Use:   "minimal",
	Short: "Reset and seed a small deterministic data set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *gorm.DB, _ *slog.Logger) error {
			return db.SeedMinimal(database)
		})
	},
}

func init() {
	demoCmd.Flags().IntVar(&perVertical, "per-vertical", 50, "candidates per entity type")
	demoCmd.Flags().Int64Var(&randSeed, "rand-seed", time.Now().UnixNano(), "random source seed")
	rootCmd.AddCommand(demoCmd, minimalCmd)
}

func withDB(fn func(*gorm.DB, *slog.Logger) error) error {
	_ = godotenv.Load()

	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}

	if err := fn(database, log); err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}
	log.Info("seeding completed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
