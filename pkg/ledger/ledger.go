package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aretw0/aura/internal/logging"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a customer lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Ledger serves ports.Bank on top of a ports.LedgerStore.
// It uses reference counting to garbage collect unused locks.
type Ledger struct {
	store ports.LedgerStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker   ports.DistributedLocker
	lockTTL  time.Duration
	hashCost int
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.Bank = (*Ledger)(nil)

// Option configures the Ledger.
type Option func(*Ledger)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(l *Ledger) {
		l.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(l *Ledger) {
		l.lockTTL = ttl
	}
}

// WithHashCost sets the bcrypt cost used by Register.
func WithHashCost(cost int) Option {
	return func(l *Ledger) {
		l.hashCost = cost
	}
}

// WithClock overrides the time source stamped on receipts.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithLogger configures a logger for the Ledger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// New creates a Ledger over store.
func New(store ports.LedgerStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		locks:    make(map[string]*lockEntry),
		lockTTL:  DefaultLockTTL,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register creates or replaces a customer with a hashed password.
func (l *Ledger) Register(ctx context.Context, id, password string, accounts []domain.UserAccount) error {
	if id == "" {
		return fmt.Errorf("customer id is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password for %q: %w", id, err)
	}
	customer := &domain.Customer{
		ID:           id,
		PasswordHash: hash,
		Accounts:     append([]domain.UserAccount(nil), accounts...),
	}
	return l.withLocks(ctx, []string{id}, func(ctx context.Context) error {
		return l.store.Save(ctx, customer)
	})
}

// Authenticate reports whether password matches the customer's hash.
func (l *Ledger) Authenticate(ctx context.Context, id, password string) (bool, error) {
	customer, err := l.store.Load(ctx, id)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load customer: %w", err)
	}

	err = bcrypt.CompareHashAndPassword(customer.PasswordHash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}

// Accounts lists the accounts of userID.
func (l *Ledger) Accounts(ctx context.Context, userID string) ([]domain.UserAccount, error) {
	customer, err := l.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return customer.Accounts, nil
}

// Transfer moves req.Amount between the primary accounts of sender and recipient.
// Refusals are reported with the ledger sentinel errors.
func (l *Ledger) Transfer(ctx context.Context, req domain.TransferRequest) (domain.Receipt, error) {
	if !req.Amount.IsPositive() {
		return domain.Receipt{}, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, req.Amount)
	}
	if req.SenderID == req.RecipientID {
		return domain.Receipt{}, domain.ErrSameAccount
	}

	err := l.withLocks(ctx, []string{req.SenderID, req.RecipientID}, func(ctx context.Context) error {
		sender, err := l.load(ctx, req.SenderID)
		if err != nil {
			return err
		}
		recipient, err := l.load(ctx, req.RecipientID)
		if err != nil {
			return err
		}

		from, to := sender.Primary(), recipient.Primary()
		if from == nil || to == nil {
			return domain.ErrNoPrimaryAccount
		}
		if from.Balance.LessThan(req.Amount) {
			return domain.ErrInsufficientFunds
		}

		from.Balance = from.Balance.Sub(req.Amount)
		to.Balance = to.Balance.Add(req.Amount)
		return l.store.Save(ctx, sender, recipient)
	})
	if err != nil {
		l.logger.Debug("Transfer refused", "sender", req.SenderID, "recipient", req.RecipientID, "err", err)
		return domain.Receipt{}, err
	}

	receipt := domain.Receipt{
		ID:          uuid.NewString(),
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		At:          l.now(),
	}
	l.logger.Info("Transfer applied",
		"receipt", receipt.ID,
		"sender", receipt.SenderID,
		"recipient", receipt.RecipientID,
		"amount", receipt.Amount.String(),
	)
	return receipt, nil
}

func (l *Ledger) load(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := l.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer %q: %w", id, err)
	}
	return customer, nil
}

// Store returns the underlying ledger store.
func (l *Ledger) Store() ports.LedgerStore {
	return l.store
}

// acquire gets or creates a lock entry and increments its reference count.
func (l *Ledger) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *Ledger) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// withLocks runs fn while holding the locks of every key, taken in sorted order.
func (l *Ledger) withLocks(ctx context.Context, keys []string, fn func(context.Context) error) error {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	for _, key := range keys {
		entry := l.acquire(key)
		entry.mu.Lock()
		defer func() {
			entry.mu.Unlock()
			l.release(key)
		}()

		if l.locker == nil {
			continue
		}
		unlock, err := l.locker.Lock(ctx, "customer:"+key, l.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				l.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"customer", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
