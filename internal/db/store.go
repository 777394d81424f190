package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rental-admin/internal/config"
	"rental-admin/internal/storage"
)

// OpenStore abre el almacenamiento durable segun STORAGE_DRIVER. El closer
// libera la conexion subyacente y nunca es nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory session storage; sessions will not survive restarts")
		return storage.NewMemoryStore(), noop, nil

	case config.StorageRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("redis connect: %w", err)
		}
		return storage.NewRedisStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		pool, err := NewPool(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("db connect: %w", err)
		}
		store := storage.NewPgStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("db migrate: %w", err)
		}
		return store, pool.Close, nil

	case config.StorageSQLite, "":
		store, err := storage.OpenSQLite(ctx, cfg.StoragePath)
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite open: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
	return nil, noop, fmt.Errorf("%w: unknown STORAGE_DRIVER %q", config.ErrInvalidConfig, cfg.StorageDriver)
}
