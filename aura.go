package aura

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/aura/internal/logging"
	httpAdapter "github.com/aretw0/aura/pkg/adapters/http"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
	"github.com/aretw0/aura/pkg/repository"
	"github.com/aretw0/aura/pkg/screen"
)

// App is the high-level entry point for the Aura client.
// It owns the network boundary and builds the screens on top of it.
type App struct {
	baseURL string
	timeout time.Duration
	network ports.NetworkService
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	login    *repository.Login
	home     *repository.Home
	transfer *repository.Transfer
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithBaseURL sets the bank server address (default: http://localhost:8080/).
func WithBaseURL(baseURL string) Option {
	return func(a *App) {
		a.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP timeout of every call.
func WithTimeout(d time.Duration) Option {
	return func(a *App) {
		a.timeout = d
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithHooks registers observability hooks for requests and screen transitions.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithNetworkService injects a custom network boundary, bypassing the HTTP client.
func WithNetworkService(svc ports.NetworkService) Option {
	return func(a *App) {
		a.network = svc
	}
}

// New initializes an App. Without WithNetworkService it talks HTTP to the base URL.
func New(opts ...Option) (*App, error) {
	app := &App{
		baseURL: httpAdapter.DefaultBaseURL,
		timeout: httpAdapter.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		app.logger = logging.NewNop()
	}

	if app.network == nil {
		client, err := httpAdapter.NewClient(app.baseURL,
			httpAdapter.WithTimeout(app.timeout),
			httpAdapter.WithLogger(app.logger),
			httpAdapter.WithHooks(app.hooks),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		app.network = client
	}

	app.login = repository.NewLogin(app.network)
	app.home = repository.NewHome(app.network)
	app.transfer = repository.NewTransfer(app.network)
	return app, nil
}

func (a *App) screenOptions() []screen.Option {
	return []screen.Option{
		screen.WithLogger(a.logger),
		screen.WithHooks(a.hooks),
	}
}

// LoginScreen creates a fresh login screen.
func (a *App) LoginScreen() *screen.Login {
	return screen.NewLogin(a.login, a.screenOptions()...)
}

// HomeScreen creates the home screen of an authenticated session.
func (a *App) HomeScreen(session domain.Session) (*screen.Home, error) {
	return screen.NewHome(session, a.home, a.screenOptions()...)
}

// TransferScreen creates the transfer screen of an authenticated session.
func (a *App) TransferScreen(session domain.Session) (*screen.Transfer, error) {
	return screen.NewTransfer(session, a.transfer, a.screenOptions()...)
}

// Network returns the boundary used by the app.
func (a *App) Network() ports.NetworkService {
	return a.network
}
