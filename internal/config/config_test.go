package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a config file setting only the log level
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: defaults are filled in
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.TTL)
		assert.False(t, conf.Telemetry.Enabled)
		assert.Equal(t, "tictactoe", conf.Telemetry.ServiceName)
	})

	t.Run("Reads yaml values", func(t *testing.T) {
		// Given: a config selecting redis
		path := writeConfig(t, `
log-level: debug
storage: redis
game-id: abc
redis:
  host: cache
  port: "6380"
  ttl: 1h
`)

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the values are read
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "abc", conf.GameID)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.TTL)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a game id in the environment
		path := writeConfig(t, "game-id: from-file\n")
		t.Setenv("TICTACTOE_GAME_ID", "from-env")

		// When: loading the config
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the environment wins
		assert.Equal(t, "from-env", conf.GameID)
	})

	t.Run("Rejects unknown storage", func(t *testing.T) {
		path := writeConfig(t, "storage: postgres\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("Rejects unknown log level", func(t *testing.T) {
		path := writeConfig(t, "log-level: verbose\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownLogLevel)
	})

	t.Run("Rejects a mistyped log level from the environment", func(t *testing.T) {
		path := writeConfig(t, "log-level: info\n")
		t.Setenv("TICTACTOE_LOG_LEVEL", "INFO")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownLogLevel)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
