// Package config loads the aura configuration from a YAML file overlaid with
// AURA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the configuration shared by every aura command.
type Config struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
	Server   Server        `mapstructure:"server"`
}

// Server configures the demo bank started by `aura serve`.
type Server struct {
	Addr       string  `mapstructure:"addr"`
	Seed       string  `mapstructure:"seed"`
	RedisURL   string  `mapstructure:"redis_url"`
	LoginRate  float64 `mapstructure:"login_rate"`
	LoginBurst int     `mapstructure:"login_burst"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		BaseURL:  "http://localhost:8080/",
		Timeout:  10 * time.Second,
		LogLevel: "info",
		Server: Server{
			Addr:       ":8080",
			LoginRate:  1,
			LoginBurst: 5,
		},
	}
}

// envKeys maps environment variables to dotted config keys.
var envKeys = map[string]string{
	"AURA_BASE_URL":           "base_url",
	"AURA_TIMEOUT":            "timeout",
	"AURA_LOG_LEVEL":          "log_level",
	"AURA_SERVER_ADDR":        "server.addr",
	"AURA_SERVER_SEED":        "server.seed",
	"AURA_SERVER_REDIS_URL":   "server.redis_url",
	"AURA_SERVER_LOGIN_RATE":  "server.login_rate",
	"AURA_SERVER_LOGIN_BURST": "server.login_burst",
}

// Load reads path (optional), applies the environment and validates the result.
func Load(path string) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for env, key := range envKeys {
		if v, ok := os.LookupEnv(env); ok {
			set(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func set(m map[string]any, path []string, v string) {
	if len(path) == 1 {
		m[path[0]] = v
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[path[0]] = child
	}
	set(child, path[1:], v)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Server.LoginRate < 0 || c.Server.LoginBurst < 0 {
		return errors.New("server login_rate and login_burst must not be negative")
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
