package persistence

import (
	"context"
	"fmt"

	"medsim/internal/platform/config"
	"medsim/internal/platform/persistence/postgres"
	"medsim/internal/platform/persistence/redis"
	"medsim/internal/platform/persistence/s3"
	"medsim/internal/platform/persistence/sqlite"
	platformredis "medsim/internal/platform/redis"
)

// Open connects the backend selected by cfg.Driver. The memory driver has no
// backend and returns nil.
func Open(ctx context.Context, cfg config.Persistence) (Backend, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Driver {
	case config.DriverMemory, "":
		return nil, nil
	case config.DriverSQLite:
		var b *sqlite.Backend
		if b, err = sqlite.New(ctx, cfg.SQLite.Path); err == nil {
			backend = b
		}
	case config.DriverPostgres:
		var b *postgres.Backend
		if b, err = postgres.New(ctx, cfg.Postgres.DSN); err == nil {
			backend = b
		}
	case config.DriverRedis:
		var client *platformredis.Client
		if client, err = platformredis.New(ctx, cfg.Redis); err == nil {
			backend = redis.New(client)
		}
	case config.DriverS3:
		var b *s3.Backend
		if b, err = s3.New(ctx, cfg.S3); err == nil {
			backend = b
		}
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Driver, err)
	}
	return backend, nil
}
