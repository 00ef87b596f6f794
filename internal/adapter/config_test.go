package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.UI.MessageTimeout)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  url: http://prices.example:9000\n  timeout: 10s\nui:\n  message_timeout: 2s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://prices.example:9000", cfg.Server.URL)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 2*time.Second, cfg.UI.MessageTimeout)
	// Untouched keys keep their defaults
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PRICETRACK_SERVER_URL", "http://env.example")
	t.Setenv("PRICETRACK_LOGGING_LEVEL", "DEBUG")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.Server.URL)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Server.URL = "http://saved.example"
	cfg.UI.MessageTimeout = 7 * time.Second

	require.NoError(t, SaveConfigTo(cfg, dir))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.example", loaded.Server.URL)
	assert.Equal(t, 7*time.Second, loaded.UI.MessageTimeout)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
	assert.Equal(t, slog.LevelDebug+2, parseLogLevel("debug+2"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/logs/pricetrack.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "pricetrack.log"), got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got, "empty path keeps the store memory-only")

	got, err = ExpandPath("/var/tmp/~x")
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/~x", got)
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pricetrack.log")

	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"pid":`)
	assert.NotContains(t, string(data), "hidden")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
