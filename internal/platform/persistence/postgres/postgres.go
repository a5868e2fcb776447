// Package postgres stores bucket snapshots in a Postgres JSONB table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"medsim/pkg/platform/sentinel"
)

const driverName = "pgx"

type Backend struct {
	db *sql.DB
}

// New connects to dsn and ensures the state table exists.
func New(ctx context.Context, dsn string) (*Backend, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Load(ctx context.Context, bucket string) ([]byte, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", bucket, err)
	}
	return payload, nil
}

func (b *Backend) Save(ctx context.Context, bucket string, payload []byte) error {
	if _, err := b.db.ExecContext(ctx,
		`INSERT INTO state(bucket, payload) VALUES($1, $2::jsonb) ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload`,
		bucket, string(payload),
	); err != nil {
		return fmt.Errorf("upsert %s: %w", bucket, err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
