package repository

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

// Transfer sends money between customers.
type Transfer struct {
	svc ports.NetworkService
}

// NewTransfer creates a transfer repository over svc.
func NewTransfer(svc ports.NetworkService) *Transfer {
	return &Transfer{svc: svc}
}

// Transfer sends req once. A repeated call is a repeated transfer.
func (r *Transfer) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferResponse, error) {
	resp, err := r.svc.Transfer(ctx, req)
	if err != nil {
		return domain.TransferResponse{}, domain.AsNetworkError(err)
	}
	return resp, nil
}
