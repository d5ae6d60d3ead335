package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads values from the config file", func(t *testing.T) {
		// Given: a config file overriding ports and enabling redis
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\n" +
			"http-port: \"8081\"\n" +
			"socket-port: \"8082\"\n" +
			"allowed-origin: \"https://chess.example\"\n" +
			"redis:\n" +
			"  enabled: true\n" +
			"  host: cache\n" +
			"  archive-ttl: 1h\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and unspecified fields keep defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, "8082", conf.SocketPort)
		assert.Equal(t, "https://chess.example", conf.AllowedOrigin)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.ArchiveTTL)
		assert.Equal(t, int64(100), conf.Redis.ArchiveRecent)
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		// Given: a path that does not exist and an env override
		t.Setenv("SOCKET_PORT", "4000")
		path := filepath.Join(t.TempDir(), "missing.yml")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults and environment are used
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "4000", conf.SocketPort)
		assert.Equal(t, "http://localhost:5173", conf.AllowedOrigin)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, 24*time.Hour, conf.Redis.ArchiveTTL)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		// Given: a file that is not valid yaml
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: [unterminated"), 0o600))

		// Then: MustLoad panics
		assert.Panics(t, func() { MustLoad(path) })
	})
}
