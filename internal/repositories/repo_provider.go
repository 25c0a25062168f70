package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
	"github.com/SscSPs/currency_convertor/internal/platform/config"
	"github.com/SscSPs/currency_convertor/internal/repositories/database/memory"
	"github.com/SscSPs/currency_convertor/internal/repositories/database/pgsql"
	kvredis "github.com/SscSPs/currency_convertor/internal/repositories/database/redis"
	"github.com/SscSPs/currency_convertor/internal/repositories/database/sqlite"
	"github.com/SscSPs/currency_convertor/pkg/database"
)

// NewRepositoryProvider opens the key-value backend selected by cfg.StoreDriver.
// The returned close func releases the backend's connections and is never nil.
func NewRepositoryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	noop := func() {}
	logger = logger.With(slog.String("store_driver", cfg.StoreDriver))

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store, state will not survive a restart")
		return portsrepo.RepositoryProvider{Store: memory.NewKVRepository()}, noop, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		store, err := sqlite.NewKVRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return portsrepo.RepositoryProvider{}, noop, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.SQLitePath))
		return portsrepo.RepositoryProvider{Store: store}, func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite store", slog.String("error", err.Error()))
			}
		}, nil

	case config.StoreDriverPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool, logger) }, nil

	case config.StoreDriverRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		logger.Info("Redis store connected", slog.String("prefix", cfg.RedisPrefix))
		return portsrepo.RepositoryProvider{Store: kvredis.NewKVRepository(client, cfg.RedisPrefix)}, func() {
			if err := client.Close(); err != nil {
				logger.Error("Error closing Redis client", slog.String("error", err.Error()))
			}
		}, nil

	default:
		return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
