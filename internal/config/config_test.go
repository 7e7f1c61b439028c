package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	assert.Equal(t, "9090", cfg.Server.GRPCPort)
	assert.Equal(t, ModeSynthetic, cfg.Telemetry.Mode)
	assert.Equal(t, 5*time.Second, cfg.Telemetry.HealthInterval)
	assert.Equal(t, 2*time.Second, cfg.Telemetry.PerformanceInterval)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.StaleAfter)
	assert.Equal(t, 20, cfg.Telemetry.HistorySize)
	assert.Equal(t, "homewatch:changes", cfg.Redis.Channel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "18080")
	t.Setenv("HEALTH_INTERVAL", "1s")
	t.Setenv("HISTORY_SIZE", "5")
	t.Setenv("TELEMETRY_SEED", "42")
	t.Setenv("STALE_AFTER", "not-a-duration")

	cfg := LoadFromEnv()

	assert.Equal(t, "18080", cfg.Server.HTTPPort)
	assert.Equal(t, time.Second, cfg.Telemetry.HealthInterval)
	assert.Equal(t, 5, cfg.Telemetry.HistorySize)
	assert.Equal(t, uint64(42), cfg.Telemetry.Seed)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.StaleAfter)
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "redis:6379")
	path := filepath.Join(t.TempDir(), "homewatch.yaml")
	content := `
server:
  http_port: "8181"
telemetry:
  mode: host
  health_interval: 3s
  stale_after: 10s
  disconnected_after: 30s
redis:
  addr: ${TEST_REDIS_ADDR}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8181", cfg.Server.HTTPPort)
	assert.Equal(t, "9090", cfg.Server.GRPCPort)
	assert.Equal(t, ModeHost, cfg.Telemetry.Mode)
	assert.Equal(t, 3*time.Second, cfg.Telemetry.HealthInterval)
	assert.Equal(t, 2*time.Second, cfg.Telemetry.PerformanceInterval)
	assert.Equal(t, 30*time.Second, cfg.Telemetry.DisconnectedAfter)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero health interval", func(c *Config) { c.Telemetry.HealthInterval = 0 }, ErrInvalidInterval},
		{"negative performance interval", func(c *Config) { c.Telemetry.PerformanceInterval = -time.Second }, ErrInvalidInterval},
		{"disconnected before stale", func(c *Config) { c.Telemetry.DisconnectedAfter = time.Second }, ErrInvalidStale},
		{"unknown mode", func(c *Config) { c.Telemetry.Mode = "replay" }, ErrInvalidMode},
		{"empty history", func(c *Config) { c.Telemetry.HistorySize = 0 }, ErrInvalidHistory},
		{"history above cap", func(c *Config) { c.Telemetry.HistorySize = 21 }, ErrInvalidHistory},
		{"missing port", func(c *Config) { c.Server.GRPCPort = "" }, ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadFromEnv()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestOversizedHistoryFromEnvIsRejected(t *testing.T) {
	t.Setenv("HISTORY_SIZE", "500")

	cfg := LoadFromEnv()
	assert.Equal(t, 500, cfg.Telemetry.HistorySize)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidHistory)

	t.Setenv("HISTORY_SIZE", "20")
	assert.NoError(t, LoadFromEnv().Validate())
}
