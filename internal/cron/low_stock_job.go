package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

const lowStockJobName = "inventory-low-stock"

type LowStockJobParams struct {
	Logger    *logger.Logger
	Inventory lowStockSource
	Gauge     lowStockGauge
}

type lowStockSource interface {
	LowStock(ctx context.Context) ([]models.Inventory, error)
}

type lowStockGauge interface {
	SetLowStock(count int)
}

// NewLowStockJob reports every inventory row at or below its reorder
// threshold and publishes the count as a gauge.
func NewLowStockJob(params LowStockJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory source required")
	}
	if params.Gauge == nil {
		return nil, fmt.Errorf("low stock gauge required")
	}
	return &lowStockJob{
		logg:      params.Logger,
		inventory: params.Inventory,
		gauge:     params.Gauge,
	}, nil
}

type lowStockJob struct {
	logg      *logger.Logger
	inventory lowStockSource
	gauge     lowStockGauge
}

func (j *lowStockJob) Name() string { return lowStockJobName }

func (j *lowStockJob) Run(ctx context.Context) error {
	rows, err := j.inventory.LowStock(ctx)
	if err != nil {
		return fmt.Errorf("load low stock: %w", err)
	}
	j.gauge.SetLowStock(len(rows))

	var errs error
	for _, row := range rows {
		if row.Book == nil {
			errs = multierr.Append(errs, fmt.Errorf("inventory %s: book %s not loaded", row.ID, row.BookID))
			continue
		}
		itemCtx := j.logg.WithFields(ctx, map[string]any{
			"book_id":           row.BookID.String(),
			"title":             row.Book.Title,
			"quantity":          row.Quantity,
			"reorder_threshold": row.ReorderThreshold,
		})
		j.logg.Warn(itemCtx, "book needs reorder")
	}

	j.logg.Info(j.logg.WithField(ctx, "low_stock_count", len(rows)), "low stock report complete")
	return errs
}
