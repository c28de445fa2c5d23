package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "aura:ledger:"

// Store implements ports.LedgerStore using Redis.
// Each customer is a JSON document; a sorted set indexes the ids.
type Store struct {
	client *backend.Client
	prefix string
}

var _ ports.LedgerStore = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix for customers.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store from a redis:// URL.
func New(url string, opts ...Option) (*Store, error) {
	options, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(options), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + "customer:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save writes every customer in one MULTI/EXEC transaction.
func (s *Store) Save(ctx context.Context, customers ...*domain.Customer) error {
	payloads := make([][]byte, len(customers))
	for i, c := range customers {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal customer %q: %w", c.ID, err)
		}
		payloads[i] = data
	}

	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		for i, c := range customers {
			pipe.Set(ctx, s.key(c.ID), payloads[i], 0)
			pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: 0, Member: c.ID})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the customer from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Customer, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var customer domain.Customer
	if err := json.Unmarshal(val, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}
	return &customer, nil
}

// Delete removes the customer.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	return err
}

// List returns the indexed customer ids in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return ids, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client returns the underlying redis client, shared with the Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
