package main

import (
	"context"
	"fmt"
	"log/slog"

	csvadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/csv"
	"github.com/couchcryptid/wildfire-explorer/internal/adapter/mapbox"
	sqliteadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/sqlite"
	"github.com/couchcryptid/wildfire-explorer/internal/config"
	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	"github.com/spf13/cobra"
)

// loadConfig reads the environment and applies the --data override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if path, _ := cmd.Flags().GetString("data"); path != "" {
		cfg.DataPath = path
		cfg.DataFormat = config.InferFormat(path)
	}
	return cfg, nil
}

// loadDataset reads incidents with the configured loader, backfills missing
// states when Mapbox is enabled, and builds the immutable dataset.
func loadDataset(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*domain.Dataset, error) {
	var (
		incidents []domain.Incident
		err       error
	)
	switch cfg.DataFormat {
	case config.FormatSQLite:
		incidents, err = sqliteadapter.NewLoader(cfg.DataPath, logger).Load(ctx)
	default:
		incidents, err = csvadapter.NewLoader(cfg.DataPath, logger).Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		resolver, err := mapbox.NewCachedResolver(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return nil, err
		}
		var filled int
		incidents, filled = domain.BackfillStates(ctx, incidents, resolver, logger)
		logger.Info("mapbox state backfill complete", "filled", filled, "cache_size", cfg.MapboxCacheSize)
	} else {
		logger.Info("mapbox state backfill disabled")
	}

	ds := domain.NewDataset(incidents)

	minYear, maxYear, _ := ds.YearDomain()
	logger.Info("dataset loaded",
		"path", cfg.DataPath,
		"format", cfg.DataFormat,
		"incidents", ds.Len(),
		"min_year", minYear,
		"max_year", maxYear,
		"causes", len(ds.Causes()),
	)
	return ds, nil
}
