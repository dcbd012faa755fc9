package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "data/database.sqlite", cfg.DB.Path)
	assert.Equal(t, 8000, cfg.API.Port)
	assert.Equal(t, 5, cfg.Job.Steps)
	assert.Equal(t, time.Second, cfg.Job.StepInterval)
	assert.Contains(t, cfg.API.CORS.AllowOrigins, "*")
	assert.False(t, cfg.IsTest())
}

func TestLoad_TestDBPathOverride(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/other.sqlite")
	t.Setenv("TEST_DB_PATH", "/tmp/test.sqlite")
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.sqlite", cfg.DB.Path)
	assert.True(t, cfg.IsTest())
}

func TestLoad_TestDBPathOverridesConfigFile(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("TEST_DB_PATH", "/tmp/test.sqlite")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  path: /var/lib/real.sqlite\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.sqlite", cfg.DB.Path)
}

func TestLoad_DatabasePathEnv(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "")
	t.Setenv("DATABASE_PATH", "/tmp/other.sqlite")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.sqlite", cfg.DB.Path)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "")
	t.Setenv("DATABASE_PATH", "")

	dir := t.TempDir()
	content := []byte(`
logger:
  level: debug
  encoding: console
api:
  port: 9090
job:
  steps: 3
  step_interval: 250ms
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, 3, cfg.Job.Steps)
	assert.Equal(t, 250*time.Millisecond, cfg.Job.StepInterval)
}
