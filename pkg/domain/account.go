package domain

import "github.com/shopspring/decimal"

// UserAccount is one account of a customer as returned by the accounts fetch.
type UserAccount struct {
	ID        string          `json:"id"`
	IsPrimary bool            `json:"main"`
	Balance   decimal.Decimal `json:"balance"`
}

// PrimaryAccount returns the first account flagged as primary.
func PrimaryAccount(accounts []UserAccount) (UserAccount, bool) {
	for _, a := range accounts {
		if a.IsPrimary {
			return a, true
		}
	}
	return UserAccount{}, false
}

// Customer is the bank-side record behind a login identifier.
type Customer struct {
	ID           string        `json:"id"`
	PasswordHash []byte        `json:"password_hash"`
	Accounts     []UserAccount `json:"accounts"`
}

// Primary returns a pointer to the customer's primary account, or nil.
func (c *Customer) Primary() *UserAccount {
	for i := range c.Accounts {
		if c.Accounts[i].IsPrimary {
			return &c.Accounts[i]
		}
	}
	return nil
}

// Clone returns a deep copy so stores never share account slices with callers.
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.PasswordHash = append([]byte(nil), c.PasswordHash...)
	cp.Accounts = append([]UserAccount(nil), c.Accounts...)
	return &cp
}
