// Package redis stores bucket snapshots as plain Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	platformredis "medsim/internal/platform/redis"
	"medsim/pkg/platform/sentinel"
)

const keyPrefix = "medsim:state:"

type Backend struct {
	client *platformredis.Client
}

func New(client *platformredis.Client) *Backend {
	return &Backend{client: client}
}

func key(bucket string) string {
	return keyPrefix + bucket
}

func (b *Backend) Load(ctx context.Context, bucket string) ([]byte, error) {
	payload, err := b.client.Get(ctx, key(bucket)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", bucket, err)
	}
	return payload, nil
}

func (b *Backend) Save(ctx context.Context, bucket string, payload []byte) error {
	if err := b.client.Set(ctx, key(bucket), payload, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", bucket, err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}
