package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Setenv(apiBaseURLEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(logLevelEnv, "")

	cfg := LoadFrom("")

	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadFromFileMergesAndEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  baseUrl: http://catalog.internal:5000/api
  timeout: 5s
database:
  parallelism: 8
logging:
  level: debug
dashboard:
  refreshInterval: 90s
search:
  limit: 25
`), 0o600))

	t.Setenv(apiBaseURLEnv, "")
	t.Setenv(databaseDSNEnv, "postgres://env@db/products")
	t.Setenv(logLevelEnv, "warn")

	cfg := LoadFrom(path)

	assert.Equal(t, "http://catalog.internal:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8, cfg.Database.Parallelism)
	assert.Equal(t, "public", cfg.Database.Schema)
	assert.Equal(t, "_embeddings", cfg.Database.EmbeddingSuffix)
	assert.Equal(t, "postgres://env@db/products", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 90*time.Second, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 25, cfg.Search.Limit)
	assert.Equal(t, defaultConfig().Search.DefaultQuestion, cfg.Search.DefaultQuestion)
}

func TestLoadFromBrokenFileFallsBack(t *testing.T) {
	t.Setenv(apiBaseURLEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(logLevelEnv, "")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

	assert.Equal(t, defaultConfig(), LoadFrom(path))
	assert.Equal(t, defaultConfig(), LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")))
}
