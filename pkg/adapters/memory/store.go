package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

// Store implements ports.LedgerStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Customer
	mu   sync.RWMutex
}

var _ ports.LedgerStore = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Customer),
	}
}

// Save persists the customers in memory under a single lock.
func (s *Store) Save(ctx context.Context, customers ...*domain.Customer) error {
	// Copy before locking so callers can keep mutating their values.
	copies := make([]*domain.Customer, len(customers))
	for i, c := range customers {
		copies[i] = c.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range copies {
		s.data[c.ID] = c
	}
	return nil
}

// Load retrieves a copy of the customer.
func (s *Store) Load(ctx context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.data[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return customer.Clone(), nil
}

// Delete removes the customer.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored customer ids, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
