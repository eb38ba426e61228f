package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

// MaybeRunDev brings the schema up to date when running in dev with the
// AutoMigrate flag on.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	return EnsureSchema(ctx, logg, client)
}

// EnsureSchema runs the goose migrations on Postgres. sqlite and mysql have no
// SQL migrations and get gorm AutoMigrate over every model instead.
func EnsureSchema(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	ctx = logg.WithField(ctx, "db_driver", client.Driver())

	if client.Driver() != config.DriverPostgres {
		logg.Info(ctx, "running gorm auto-migrate")
		if err := client.AutoMigrate(ctx, models.All()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		logg.Info(ctx, "gorm auto-migrate completed")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running goose migrations")
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	logg.Info(ctx, "goose migrations completed")
	return nil
}
