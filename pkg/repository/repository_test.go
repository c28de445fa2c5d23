package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService answers from its fields and counts calls.
type stubService struct {
	login    domain.LoginResponse
	transfer domain.TransferResponse
	accounts []domain.UserAccount
	err      error
	calls    int
	lastReq  domain.TransferRequest
}

func (s *stubService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	s.calls++
	return s.login, s.err
}

func (s *stubService) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferResponse, error) {
	s.calls++
	s.lastReq = req
	return s.transfer, s.err
}

func (s *stubService) FetchAccounts(ctx context.Context, userID string) ([]domain.UserAccount, error) {
	s.calls++
	return s.accounts, s.err
}

func TestLogin_PassThrough(t *testing.T) {
	svc := &stubService{login: domain.LoginResponse{Outcome: domain.LoginGranted}}
	repo := repository.NewLogin(svc)

	resp, err := repo.Login(context.Background(), domain.LoginRequest{ID: "u1", Password: "p1"})
	require.NoError(t, err)
	assert.True(t, resp.Granted())
	assert.Equal(t, 1, svc.calls)
}

func TestLogin_ErrorUnchanged(t *testing.T) {
	netErr := &domain.ConnectivityError{TimedOut: true}
	repo := repository.NewLogin(&stubService{err: netErr})

	_, err := repo.Login(context.Background(), domain.LoginRequest{})
	assert.Same(t, netErr, err)
}

func TestHome_RawList(t *testing.T) {
	accounts := []domain.UserAccount{
		{ID: "1", IsPrimary: false, Balance: decimal.NewFromInt(1)},
	}
	repo := repository.NewHome(&stubService{accounts: accounts})

	got, err := repo.FetchAccounts(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestHome_ForeignErrorNarrowed(t *testing.T) {
	cause := errors.New("boom")
	repo := repository.NewHome(&stubService{err: cause})

	_, err := repo.FetchAccounts(context.Background(), "1234")
	var unknown *domain.UnknownError
	require.ErrorAs(t, err, &unknown)
	assert.ErrorIs(t, err, cause)
}

func TestTransfer_EchoPreservesRequest(t *testing.T) {
	svc := &stubService{transfer: domain.TransferResponse{Outcome: domain.TransferSucceeded}}
	repo := repository.NewTransfer(svc)

	req := domain.TransferRequest{SenderID: "1234", RecipientID: "5678", Amount: decimal.RequireFromString("123.45")}
	resp, err := repo.Transfer(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Succeeded())
	assert.Equal(t, req.SenderID, svc.lastReq.SenderID)
	assert.Equal(t, req.RecipientID, svc.lastReq.RecipientID)
	assert.Equal(t, "123.45", svc.lastReq.Amount.String())
}
