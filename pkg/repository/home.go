package repository

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

// Home loads the accounts shown on the home screen.
type Home struct {
	svc ports.NetworkService
}

// NewHome creates a home repository over svc.
func NewHome(svc ports.NetworkService) *Home {
	return &Home{svc: svc}
}

// FetchAccounts returns the raw accounts list; picking the primary one is the screen's job.
func (r *Home) FetchAccounts(ctx context.Context, userID string) ([]domain.UserAccount, error) {
	accounts, err := r.svc.FetchAccounts(ctx, userID)
	if err != nil {
		return nil, domain.AsNetworkError(err)
	}
	return accounts, nil
}
