//go:build integration

package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsim/internal/platform/config"
	"medsim/pkg/testutil/containers"
)

func TestClientIntegration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	client, err := New(ctx, config.RedisConfig{URL: rc.URL, PoolSize: 4})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Health(ctx))
}
