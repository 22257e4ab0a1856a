// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/reelhub/internal/api"
	"github.com/taibuivan/reelhub/internal/library/favorite"
	"github.com/taibuivan/reelhub/internal/library/review"
	"github.com/taibuivan/reelhub/internal/platform/config"
	"github.com/taibuivan/reelhub/internal/platform/migration"
	mongostore "github.com/taibuivan/reelhub/internal/platform/mongo"
	pgstore "github.com/taibuivan/reelhub/internal/platform/postgres"
	"github.com/taibuivan/reelhub/internal/users/account"
)

// storage bundles the repositories of the selected driver.
type storage struct {
	accounts  account.Repository
	favorites favorite.Repository
	reviews   review.Repository

	check api.Check
	close func(ctx context.Context)
}

// indexer is implemented by the MongoDB repositories.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// openStorage connects the driver named by cfg.StorageDriver and prepares its
// schema (migrations for postgres, indexes for mongo).
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, cfg.RequestTimeout, logger)
		if err != nil {
			return nil, err
		}
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			pool.Close()
			return nil, err
		}

		return &storage{
			accounts:  account.NewPostgresRepository(pool),
			favorites: favorite.NewPostgresRepository(pool),
			reviews:   review.NewPostgresRepository(pool),
			check: api.Check{Name: config.DriverPostgres, Ping: func(ctx context.Context) error {
				return pgstore.Ping(ctx, pool)
			}},
			close: func(context.Context) {
				logger.Info("closing_postgres_pool")
				pool.Close()
			},
		}, nil

	case config.DriverMongo:
		database, err := mongostore.NewDatabase(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}

		accounts := account.NewMongoRepository(database)
		favorites := favorite.NewMongoRepository(database)
		reviews := review.NewMongoRepository(database)

		for _, repository := range []indexer{accounts, favorites, reviews} {
			if err := repository.EnsureIndexes(ctx); err != nil {
				_ = database.Client().Disconnect(ctx)
				return nil, err
			}
		}

		return &storage{
			accounts:  accounts,
			favorites: favorites,
			reviews:   reviews,
			check: api.Check{Name: config.DriverMongo, Ping: func(ctx context.Context) error {
				return mongostore.Ping(ctx, database.Client())
			}},
			close: func(ctx context.Context) {
				logger.Info("closing_mongo_client")
				if err := database.Client().Disconnect(ctx); err != nil {
					logger.Error("mongo_disconnect_failed", slog.Any("error", err))
				}
			},
		}, nil

	case config.DriverMemory:
		logger.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))
		return &storage{
			accounts:  account.NewMemoryRepository(),
			favorites: favorite.NewMemoryRepository(),
			reviews:   review.NewMemoryRepository(),
			check:     api.Check{Name: config.DriverMemory, Ping: func(context.Context) error { return nil }},
			close:     func(context.Context) {},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
