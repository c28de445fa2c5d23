package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLedgerStoreContract runs a suite of tests to verify that a LedgerStore implementation
// adheres to the defined interface contract.
func RunLedgerStoreContract(t *testing.T, store LedgerStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	newCustomer := func(id, balance string) *domain.Customer {
		return &domain.Customer{
			ID:           id,
			PasswordHash: []byte("hash"),
			Accounts: []domain.UserAccount{
				{ID: id + "-main", IsPrimary: true, Balance: decimal.RequireFromString(balance)},
				{ID: id + "-savings", Balance: decimal.RequireFromString("345.10")},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, newCustomer(id, "2000.55"))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.ID)
		assert.Equal(t, []byte("hash"), loaded.PasswordHash)
		require.Len(t, loaded.Accounts, 2)
		assert.True(t, loaded.Accounts[0].IsPrimary)
		assert.Equal(t, "2000.55", loaded.Accounts[0].Balance.StringFixed(2))
		assert.Equal(t, "345.10", loaded.Accounts[1].Balance.StringFixed(2))
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Accounts[0].Balance = decimal.Zero

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "2000.55", again.Accounts[0].Balance.StringFixed(2))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	})

	t.Run("Save Many", func(t *testing.T) {
		a, b := newCustomer(id+"-a", "1"), newCustomer(id+"-b", "2")
		require.NoError(t, store.Save(ctx, a, b))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, a.ID)
		assert.Contains(t, ids, b.ID)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound, "Load after Delete should return ErrCustomerNotFound")

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, id)
	})
}
