package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryUnit)
	assert.Equal(t, "/login", cfg.LoginRoute)
	assert.Equal(t, filepath.Join(cfg.ConfigDir, "threadscity.db"), cfg.DBPath)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("THREADSCITY_CONFIG_DIR", dir)
	t.Setenv("THREADSCITY_API_URL", "http://example.test")
	t.Setenv("THREADSCITY_RETRY_UNIT", "250ms")
	t.Setenv("THREADSCITY_MAX_RETRIES", "4")
	t.Setenv("THREADSCITY_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "threadscity.db"), cfg.DBPath)
	assert.Equal(t, "http://example.test", cfg.APIBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryUnit)
	assert.Equal(t, 4, cfg.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
