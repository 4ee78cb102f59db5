package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.False(t, cfg.UseRedisSessions())
	assert.False(t, cfg.IsRelease())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "custom.yaml")
	content := []byte("port: \"9000\"\ndb_driver: postgres\nredis_host: cache\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SESSION_SECURE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.True(t, cfg.UseRedisSessions())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.SessionSecure)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGetEnvBool_InvalidKeepsDefault(t *testing.T) {
	t.Setenv("MINIO_USE_SSL", "maybe")
	assert.True(t, getEnvBool("MINIO_USE_SSL", true))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
