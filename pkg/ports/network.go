package ports

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
)

// NetworkService is the client side network boundary.
// Every method performs exactly one remote call and fails only with a domain.NetworkError.
type NetworkService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferResponse, error)
	FetchAccounts(ctx context.Context, userID string) ([]domain.UserAccount, error)
}

// Bank is what the HTTP backend needs from the ledger.
type Bank interface {
	// Authenticate reports whether the credentials are valid. Unknown ids are not an error.
	Authenticate(ctx context.Context, id, password string) (bool, error)

	// Accounts returns domain.ErrCustomerNotFound for unknown ids.
	Accounts(ctx context.Context, userID string) ([]domain.UserAccount, error)

	// Transfer applies the request or returns a refusal error (see domain ledger errors).
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.Receipt, error)
}
