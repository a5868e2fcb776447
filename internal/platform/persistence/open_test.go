package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsim/internal/platform/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory has no backend", func(t *testing.T) {
		b, err := Open(ctx, config.Persistence{Driver: config.DriverMemory})
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("sqlite", func(t *testing.T) {
		b, err := Open(ctx, config.Persistence{
			Driver: config.DriverSQLite,
			SQLite: config.SQLite{Path: filepath.Join(t.TempDir(), "state.db")},
		})
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.NoError(t, b.Close())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, config.Persistence{Driver: "etcd"})
		assert.ErrorContains(t, err, "unknown persistence driver")
	})
}
