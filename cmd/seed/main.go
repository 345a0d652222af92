// Command seed fills a database with demonstration data for local
// development: water samples, disease reports, and the default accounts.
//
// Usage:
//
//	go run ./cmd/seed -db data/waterhealth.db [-seed 42]
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/water-health-monitor/internal/config"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
	"github.com/couchcryptid/water-health-monitor/internal/seed"
	"github.com/couchcryptid/water-health-monitor/internal/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.DBPath, "path to the SQLite database file")
	rngSeed := flag.Int64("seed", time.Now().UnixNano(), "random source seed for reproducible runs")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	st, err := sqlite.New(*dbPath, clockwork.NewRealClock())
	if err != nil {
		logger.Error("failed to open store", "error", err, "path", *dbPath)
		os.Exit(1)
	}
	defer st.Close()

	rng := rand.New(rand.NewSource(*rngSeed))
	if _, err := seed.Run(context.Background(), st, rng, time.Now().UTC(), logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
