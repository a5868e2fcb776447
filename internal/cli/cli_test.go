package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsim/internal/app"
	instructorService "medsim/internal/instructor/service"
	jwttoken "medsim/internal/jwt_token"
	"medsim/internal/platform/logger"
	"medsim/internal/platform/persistence"
	"medsim/internal/platform/persistence/sqlite"
	id "medsim/pkg/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestTokenCommand(t *testing.T) {
	cfgPath := writeConfig(t, "auth:\n  jwt_signing_key: cli-test-key\n  jwt_issuer: medsim\n")

	out, err := run(t, "token", "board", "--config", cfgPath)
	require.NoError(t, err)

	claims, err := jwttoken.NewJWTService("cli-test-key", "medsim").ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, id.Identity("board"), claims.Caller())

	_, err = run(t, "token", "   ", "--config", cfgPath)
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "state.db")

	backend, err := sqlite.New(ctx, dbPath)
	require.NoError(t, err)
	registries, err := app.New(ctx, app.Deps{
		InitialAuthority: "board",
		Logger:           logger.Discard(),
		Snapshotter:      persistence.NewSnapshotter(backend, persistence.WithLogger(logger.Discard())),
	})
	require.NoError(t, err)
	_, err = registries.Instructors.Register(ctx, "board", instructorService.RegisterInput{
		InstructorID: "dr-lee",
		Name:         "Dr. Lee",
		ValidForDays: 30,
	})
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	cfgPath := writeConfig(t, fmt.Sprintf("persistence:\n  driver: sqlite\n  sqlite:\n    path: %s\n", dbPath))

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "export", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "instructors:")
		assert.Contains(t, out, "dr-lee:")
		assert.NotContains(t, out, "sessions:", "unsaved buckets are skipped")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "export", "-o", "json", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, `"dr-lee"`)
	})

	t.Run("memory driver has nothing to export", func(t *testing.T) {
		_, err := run(t, "export", "--config", writeConfig(t, "persistence:\n  driver: memory\n"))
		assert.ErrorContains(t, err, "nothing to export")
	})
}

func TestAuditTailRequiresBrokers(t *testing.T) {
	_, err := run(t, "audit", "tail", "--config", writeConfig(t, "log:\n  level: error\n"))
	assert.ErrorContains(t, err, "audit.brokers")
}

func TestServeRefusesDevelopmentSigningKey(t *testing.T) {
	_, err := run(t, "serve", "--config", writeConfig(t, "log:\n  level: error\n"))
	assert.ErrorContains(t, err, "development key")
}
