package main

import (
	"context"
	"fmt"

	"github.com/david-rodelgo/gastoscompartidos/internal/config"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage/postgres"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage/redis"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage/sqlite"
)

// openStore opens the backend selected by DATA_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (storage.TripStore, error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, nil
	case config.BackendRedis:
		store, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
