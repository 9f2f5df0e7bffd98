package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-storefront-admin/config"
	"go-storefront-admin/internal/repository"
	"go-storefront-admin/pkg/database"
	"go-storefront-admin/pkg/logger"
)

func main() {
	days := flag.Int("days", 0, "keep this many days of stock commits (default JOURNAL_RETENTION_DAYS)")
	dryRun := flag.Bool("dry-run", false, "only print the cutoff")
	flag.Parse()

	// 1. Load Env
	envErr := godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.Logger, cfg.Server.AppEnv)
	defer log.Sync()
	if envErr != nil {
		log.Info(".env file not found, relying on system env")
	}

	retention := cfg.Journal.RetentionDays
	if *days > 0 {
		retention = *days
	}
	if retention <= 0 {
		log.Fatal("retention must be at least one day", zap.Int("days", retention))
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retention)
	if *dryRun {
		log.Info("dry run", zap.Time("cutoff", cutoff))
		return
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Postgres, log)
	if err != nil {
		log.Fatal("connect", zap.Error(err))
	}

	// 3. Prune
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	removed, err := repository.NewStockCommitRepo(db).PruneBefore(ctx, cutoff)
	if err != nil {
		log.Fatal("prune stock commits", zap.Error(err))
	}
	log.Info("stock journal pruned", zap.Int64("removed", removed), zap.Time("cutoff", cutoff))
}
