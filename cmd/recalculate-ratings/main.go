package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/logger"
	"github.com/SHOMANS/tourer-backend/internal/repository"
)

// Rewrites the cached rating aggregates for every package from the
// approved review set. Run after manual review cleanups or data imports.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	packages := repository.NewPackageRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ids, err := packages.AllIDs(ctx)
	if err != nil {
		logger.Fatal("Failed to list packages", "error", err)
	}

	failed := 0
	for _, id := range ids {
		if err := packages.RecalculateRating(ctx, id); err != nil {
			slog.Error("Failed to recalculate rating", "package_id", id, "error", err)
			failed++
		}
	}

	slog.Info("Rating recalculation finished", "packages", len(ids), "failed", failed)
}
