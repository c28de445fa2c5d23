package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/aretw0/aura/internal/config"
	"github.com/aretw0/aura/internal/logging"
	httpAdapter "github.com/aretw0/aura/pkg/adapters/http"
	"github.com/aretw0/aura/pkg/adapters/memory"
	"github.com/aretw0/aura/pkg/adapters/redis"
	"github.com/aretw0/aura/pkg/ledger"
	"github.com/aretw0/aura/pkg/observability"
	"github.com/aretw0/aura/pkg/ports"
)

// ServeOptions configures the demo bank.
type ServeOptions struct {
	Options
	Addr     string
	Seed     string
	RedisURL string
}

// shutdownTimeout bounds how long in-flight requests may take once a signal arrives.
const shutdownTimeout = 5 * time.Second

// NewBankHandler builds the ledger and its HTTP handler from cfg.
// The returned close function releases the store.
func NewBankHandler(ctx context.Context, cfg config.Server, logger *slog.Logger, metrics *observability.Metrics) (http.Handler, func() error, error) {
	var (
		store   ports.LedgerStore = memory.NewStore()
		closeFn                   = func() error { return nil }
		opts                      = []ledger.Option{ledger.WithLogger(logger)}
	)

	if cfg.RedisURL != "" {
		rs, err := redis.New(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("redis unreachable: %w", err)
		}
		store, closeFn = rs, rs.Close
		opts = append(opts, ledger.WithLocker(redis.NewLocker(rs.Client(), redis.DefaultPrefix)))
		logger.Info("Using redis ledger store", "url", cfg.RedisURL)
	}

	bank := ledger.New(store, opts...)
	if cfg.Seed != "" {
		seed, err := ledger.LoadSeedFile(cfg.Seed)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		if err := bank.Apply(ctx, seed); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	api, err := httpAdapter.NewHandler(bank,
		httpAdapter.WithServerLogger(logger),
		httpAdapter.WithLoginRate(rate.Limit(cfg.LoginRate), cfg.LoginBurst),
		httpAdapter.WithMiddleware(metrics.Middleware),
	)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	root := chi.NewRouter()
	root.Handle("/metrics", metrics.Handler())
	root.Mount("/", api)
	return root, closeFn, nil
}

// Serve runs the demo bank until the process is interrupted.
func Serve(opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.Seed != "" {
		cfg.Server.Seed = opts.Seed
	}
	if opts.RedisURL != "" {
		cfg.Server.RedisURL = opts.RedisURL
	}

	level, _ := cfg.Level()
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewJSON(level)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	handler, closeStore, err := NewBankHandler(sigCtx, cfg.Server, logger, observability.NewMetrics())
	if err != nil {
		return fmt.Errorf("error initializing bank: %w", err)
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Aura bank", "addr", srv.Addr, "seed", cfg.Server.Seed)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("Start shutdown", "signal", sigCtx.Signal())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Aura bank stopped gracefully")
		return nil
	}
}
