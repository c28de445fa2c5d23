package ledger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/aura/pkg/domain"
)

// Seed is the YAML document used to populate a ledger:
//
//	customers:
//	  - id: alice
//	    password: secret
//	    accounts:
//	      - id: alice-main
//	        main: true
//	        balance: "1250.75"
type Seed struct {
	Customers []SeedCustomer `yaml:"customers"`
}

// SeedCustomer is a customer with a clear-text password, hashed on Apply.
type SeedCustomer struct {
	ID       string        `yaml:"id"`
	Password string        `yaml:"password"`
	Accounts []SeedAccount `yaml:"accounts"`
}

// SeedAccount keeps the balance as text so no precision is lost in YAML floats.
type SeedAccount struct {
	ID      string `yaml:"id"`
	Main    bool   `yaml:"main"`
	Balance string `yaml:"balance"`
}

// ReadSeed decodes a seed document.
func ReadSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	return &seed, nil
}

// LoadSeedFile reads a seed document from path.
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed: %w", err)
	}
	defer f.Close()
	return ReadSeed(f)
}

// Apply registers every customer of seed.
func (l *Ledger) Apply(ctx context.Context, seed *Seed) error {
	for _, c := range seed.Customers {
		accounts := make([]domain.UserAccount, 0, len(c.Accounts))
		for _, a := range c.Accounts {
			balance, err := decimal.NewFromString(a.Balance)
			if err != nil {
				return fmt.Errorf("customer %q account %q: invalid balance %q: %w", c.ID, a.ID, a.Balance, err)
			}
			accounts = append(accounts, domain.UserAccount{ID: a.ID, IsPrimary: a.Main, Balance: balance})
		}
		if err := l.Register(ctx, c.ID, c.Password, accounts); err != nil {
			return err
		}
	}
	l.logger.Info("Ledger seeded", "customers", len(seed.Customers))
	return nil
}
