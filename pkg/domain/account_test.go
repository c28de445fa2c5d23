package domain_test

import (
	"testing"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrimaryAccount(t *testing.T) {
	accounts := []domain.UserAccount{
		{ID: "1", IsPrimary: true, Balance: decimal.RequireFromString("2000.0")},
		{ID: "2", IsPrimary: false, Balance: decimal.RequireFromString("345.1")},
	}

	primary, ok := domain.PrimaryAccount(accounts)
	assert.True(t, ok)
	assert.Equal(t, "1", primary.ID)

	_, ok = domain.PrimaryAccount(nil)
	assert.False(t, ok)

	_, ok = domain.PrimaryAccount(accounts[1:])
	assert.False(t, ok)
}

func TestCustomer_CloneIsolation(t *testing.T) {
	c := &domain.Customer{
		ID:       "1234",
		Accounts: []domain.UserAccount{{ID: "a", IsPrimary: true, Balance: decimal.NewFromInt(10)}},
	}

	cp := c.Clone()
	cp.Primary().Balance = decimal.NewFromInt(99)

	assert.True(t, c.Primary().Balance.Equal(decimal.NewFromInt(10)))
}
