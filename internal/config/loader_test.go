package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
  mode: release
engine:
  max_question_len: 2000
  default_mode: NEET
rate_limit:
  enabled: true
  requests_per_window: 30
  window: 60s
database:
  host: db.internal
  user: tutor
  db_name: askchem
redis:
  addr: cache.internal:6379
log:
  level: warn
  format: text
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 2000, cfg.Engine.MaxQuestionLen)
	assert.Equal(t, "NEET", cfg.Engine.DefaultMode)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerWindow)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)

	// Untouched sections fall back to defaults.
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, DefaultRedisKeyPrefix, cfg.Redis.KeyPrefix)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidConfigFails(t *testing.T) {
	path := writeTempConfig(t, `
server:
  mode: production
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromEnvUsesDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultMaxQuestionLen, cfg.Engine.MaxQuestionLen)
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("ASKCHEM_SERVER_PORT", "7070")
	t.Setenv("ASKCHEM_ENGINE_DEFAULT_MODE", "JEE")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "JEE", cfg.Engine.DefaultMode)
}

func TestMustLoadPanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yaml")) })
}
