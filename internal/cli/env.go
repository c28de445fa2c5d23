package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/aura"
	"github.com/aretw0/aura/internal/config"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/observability"
)

// Options are the flags shared by every command.
type Options struct {
	ConfigPath string
	BaseURL    string
	Debug      bool
}

// Env is what a command needs to talk to the bank.
type Env struct {
	Config config.Config
	Logger *slog.Logger
	App    *aura.App
	Out    io.Writer
}

// Setup loads the configuration, applies flag overrides and builds the App.
func Setup(opts Options, extra ...domain.LifecycleHooks) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level, _ := cfg.Level()
	logger := createLogger(opts.Debug, level)

	hooks := observability.LogHooks(logger)
	for _, h := range extra {
		hooks = hooks.Merge(h)
	}

	app, err := aura.New(
		aura.WithBaseURL(cfg.BaseURL),
		aura.WithTimeout(cfg.Timeout),
		aura.WithLogger(logger),
		aura.WithHooks(hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing aura: %w", err)
	}

	return &Env{Config: cfg, Logger: logger, App: app, Out: os.Stdout}, nil
}
