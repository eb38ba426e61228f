package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/libreria-backend/internal/seed"
	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
	"github.com/angelmondragon/libreria-backend/pkg/migrate"
)

func main() {
	reset := flag.Bool("reset", false, "delete every existing book before seeding")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":   cfg.App.Env,
		"reset": *reset,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.EnsureSchema(ctx, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to prepare schema", err)
		os.Exit(1)
	}

	if _, err := seed.Catalog(ctx, dbClient, logg, seed.Options{Reset: *reset}); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
}
