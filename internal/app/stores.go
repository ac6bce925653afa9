package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tuition_site/internal/config"
	"github.com/Freeeeeet/tuition_site/internal/repository"
	"github.com/Freeeeeet/tuition_site/internal/repository/memory"
	"github.com/Freeeeeet/tuition_site/internal/repository/supabase"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OpenStores connects the configured storage backend. The returned close
// func releases it and is never nil.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Stores, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
		if err != nil {
			return service.Stores{}, noop, fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return service.Stores{}, noop, fmt.Errorf("ping database: %w", err)
		}

		if cfg.MigrateOnStart {
			mg, err := NewMigrator(pool, logger)
			if err != nil {
				pool.Close()
				return service.Stores{}, noop, err
			}
			err = mg.Run(ctx)
			mg.Close()
			if err != nil {
				pool.Close()
				return service.Stores{}, noop, err
			}
		}

		logger.Info("Using postgres storage")
		return repository.NewStores(pool, logger), pool.Close, nil

	case config.BackendSupabase:
		client, err := supabase.New(supabase.Config{
			ProjectURL: cfg.SupabaseURL,
			APIKey:     cfg.SupabaseKey,
			Timeout:    cfg.SupabaseTimeout,
		}, logger)
		if err != nil {
			return service.Stores{}, noop, fmt.Errorf("create supabase client: %w", err)
		}
		logger.Info("Using supabase storage", zap.String("url", cfg.SupabaseURL))
		return supabase.NewStores(client), noop, nil

	default:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewStores(), noop, nil
	}
}
