package repository

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

// Login checks credentials against the bank.
type Login struct {
	svc ports.NetworkService
}

// NewLogin creates a login repository over svc.
func NewLogin(svc ports.NetworkService) *Login {
	return &Login{svc: svc}
}

// Login sends req as is.
func (r *Login) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	resp, err := r.svc.Login(ctx, req)
	if err != nil {
		return domain.LoginResponse{}, domain.AsNetworkError(err)
	}
	return resp, nil
}
