package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"base_url":        "https://api.example",
		"database_path":   "cache.db",
		"request_timeout": "20s",
		"sync_interval":   "1m",
		"rate_limit":      3,
		"log_file":        "client.log",
		"log_level":       "warn",
		"s3_endpoint":     "http://minio:9000",
		"s3_bucket":       "media",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"base_url": "https://partial.example",
	})

	t.Run("loads from flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "https://api.example", cfg.BaseURL)
		assert.Equal(t, "cache.db", cfg.DatabasePath)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.Equal(t, time.Minute, cfg.SyncInterval)
		assert.Equal(t, 3.0, cfg.RateLimit)
		assert.Equal(t, "client.log", cfg.LogFile)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
		assert.Equal(t, "media", cfg.S3Bucket)
	})

	t.Run("loads from env and keeps unmentioned fields", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(flagx.ConfigEnvVar, partial)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://partial.example", cfg.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "taskkeeper.db", cfg.DatabasePath)
	})

	t.Run("no config → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(flagx.ConfigEnvVar, "")

		cfg := &Config{BaseURL: "defaults", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.BaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
