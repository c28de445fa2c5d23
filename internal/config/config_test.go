package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aura/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aura.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
base_url: https://bank.example.com/api/
timeout: 2s
log_level: debug
server:
  addr: ":9090"
  seed: seed.yaml
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://bank.example.com/api/", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "seed.yaml", cfg.Server.Seed)
	assert.Equal(t, 5, cfg.Server.LoginBurst, "unset keys keep their defaults")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "timeout: 2s\nserver:\n  addr: \":9090\"\n")
	t.Setenv("AURA_TIMEOUT", "750ms")
	t.Setenv("AURA_SERVER_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("AURA_SERVER_LOGIN_RATE", "0.5")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Server.RedisURL)
	assert.Equal(t, 0.5, cfg.Server.LoginRate)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "colour: blue\n",
		"bad url":      "base_url: ftp://bank\n",
		"bad timeout":  "timeout: soon\n",
		"zero timeout": "timeout: 0s\n",
		"bad level":    "log_level: loud\n",
		"bad yaml":     "base_url: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
