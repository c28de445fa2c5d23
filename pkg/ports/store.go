package ports

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
)

// LedgerStore defines the interface for persisting bank customers.
type LedgerStore interface {
	// Load retrieves a customer.
	// Returns domain.ErrCustomerNotFound if the customer does not exist.
	Load(ctx context.Context, id string) (*domain.Customer, error)

	// Save persists all customers atomically: either every record is written or none is.
	Save(ctx context.Context, customers ...*domain.Customer) error

	// Delete removes a customer.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored customers.
	List(ctx context.Context) ([]string, error)
}
