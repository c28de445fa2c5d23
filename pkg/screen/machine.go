package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/aura/internal/logging"
	"github.com/aretw0/aura/pkg/domain"
)

// Option configures a screen.
type Option func(*config)

type config struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// WithLogger sets the logger used for transition logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks (OnTransition).
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

func newConfig(opts []Option) config {
	c := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// policy decides what happens to a command issued while another is in flight.
type policy int

const (
	ignoreWhileInFlight policy = iota
	replaceInFlight
)

// machine is the state slot plus the in-flight bookkeeping shared by all screens.
// All writes happen under mu so a superseded result can never land after a newer Loading.
type machine[T any] struct {
	name   string
	userID string
	slot   *Slot[T]
	config

	mu       sync.Mutex
	gen      uint64
	inFlight bool
	cancel   context.CancelFunc
	closed   bool
	life     context.Context
	stop     context.CancelFunc
}

func newMachine[T any](name, userID string, initial domain.LCE[T], cfg config) *machine[T] {
	life, stop := context.WithCancel(context.Background())
	return &machine[T]{
		name:   name,
		userID: userID,
		slot:   newSlot(initial),
		config: cfg,
		life:   life,
		stop:   stop,
	}
}

// write sets a value outside of any in-flight call (field checks).
func (m *machine[T]) write(ctx context.Context, v domain.LCE[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrScreenClosed
	}
	m.emit(ctx, v)
	return nil
}

// reject writes v for a command refused before any network call. A call in
// flight keeps the screen: the command returns domain.ErrInFlight and v is dropped.
func (m *machine[T]) reject(ctx context.Context, v domain.LCE[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrScreenClosed
	}
	if m.inFlight {
		m.logger.Debug("Command ignored while in flight", "screen", m.name, "user_id", m.userID)
		return domain.ErrInFlight
	}
	m.emit(ctx, v)
	return nil
}

// begin starts a command: it applies the policy, writes loading and returns the
// context for the network call plus the token that finish must present.
func (m *machine[T]) begin(ctx context.Context, p policy, loading domain.LCE[T]) (context.Context, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, 0, domain.ErrScreenClosed
	}
	if m.inFlight {
		switch p {
		case ignoreWhileInFlight:
			m.logger.Debug("Command ignored while in flight", "screen", m.name, "user_id", m.userID)
			return nil, 0, domain.ErrInFlight
		case replaceInFlight:
			m.logger.Debug("Command replaces in-flight call", "screen", m.name, "user_id", m.userID)
			m.cancel()
		}
	}

	callCtx, cancel := context.WithCancel(ctx)
	stopLife := context.AfterFunc(m.life, cancel)
	m.cancel = func() {
		stopLife()
		cancel()
	}
	m.gen++
	m.inFlight = true
	m.emit(ctx, loading)
	return callCtx, m.gen, nil
}

// finish publishes the outcome of the call identified by token, unless the
// screen was closed or a newer call took over.
func (m *machine[T]) finish(ctx context.Context, token uint64, v domain.LCE[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrScreenClosed
	}
	if token != m.gen {
		m.logger.Debug("Discarding superseded result", "screen", m.name, "user_id", m.userID, "state", v.Kind)
		return domain.ErrSuperseded
	}
	m.cancel()
	m.cancel = nil
	m.inFlight = false
	m.emit(ctx, v)
	return nil
}

func (m *machine[T]) emit(ctx context.Context, v domain.LCE[T]) {
	prev, ok := m.slot.set(v)
	if !ok {
		return
	}
	m.logger.Debug("Screen transition",
		"screen", m.name,
		"user_id", m.userID,
		"from", prev.Kind,
		"to", v.Kind,
		"message", v.Message,
	)
	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(ctx, &domain.TransitionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransition},
			Screen:    m.name,
			UserID:    m.userID,
			From:      prev.Kind,
			To:        v.Kind,
			Message:   v.Message,
		})
	}
}

func (m *machine[T]) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.stop()
	m.slot.close()
}
