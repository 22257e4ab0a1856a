// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mongo provides the MongoDB connection used when STORAGE_DRIVER=mongo.

It mirrors the postgres package: a constructor that retries and validates the
connection at startup, and a Ping used by the readiness probe. Collections and
indexes are owned by each domain store.
*/
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// pingTimeout is the maximum duration for a health check ping.
const pingTimeout = 2 * time.Second

// ErrFailedToConnect is returned once every connection attempt has failed.
var ErrFailedToConnect = errors.New("mongo: failed to connect")

// Config holds the connection settings, parsed from MONGODB_* variables.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL"`
	Database        string        `env:"MONGODB_DATABASE"           envDefault:"reelhub"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT"    envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE"      envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE"      envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS"     envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL"     envDefault:"5s"`
}

// NewDatabase connects, pings and returns the configured database handle.
//
// # Flow
//  1. Connect with the pool settings from cfg.
//  2. Ping the primary; on failure wait RetryInterval and try again.
//  3. Give up after RetryAttempts or when ctx is cancelled.
func NewDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*mongo.Database, error) {
	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime).
				SetRetryWrites(true).
				SetRetryReads(true),
		)
		if err == nil {
			if err = Ping(ctx, client); err == nil {
				logger.Info("mongo client connected",
					slog.String("database", cfg.Database),
					slog.Int("attempt", attempt),
				)
				return client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(context.Background())
		}

		lastErr = err
		logger.Warn("mongo_connect_retry", slog.Int("attempt", attempt), slog.Any("error", err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnect, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnect, lastErr)
}

// Ping verifies that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}
	return nil
}
