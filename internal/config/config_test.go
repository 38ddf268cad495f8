package config

import (
	"os"
	"path/filepath"
	"testing"

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
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file selecting redis and playing O
		path := writeConfig(t, `
log-level: debug
game:
  human-mark: O
  session-id: abc
  verbose: true
storage:
  type: redis
  redis:
    host: cache
    port: "6380"
`)

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: every value is taken from the file
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "O", conf.Game.HumanMark)
		assert.Equal(t, "abc", conf.Game.SessionID)
		assert.True(t, conf.Game.Verbose)
		assert.Equal(t, StorageRedis, conf.Storage.Type)
		assert.Equal(t, "cache:6380", conf.Storage.Redis.GetRedisAddr())
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: an almost empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: defaults fill the rest
		assert.Equal(t, "X", conf.Game.HumanMark)
		assert.Equal(t, "local", conf.Game.SessionID)
		assert.Equal(t, StorageMemory, conf.Storage.Type)
		assert.Equal(t, "localhost:6379", conf.Storage.Redis.GetRedisAddr())
	})

	t.Run("Error on missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})
}
