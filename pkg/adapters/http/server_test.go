package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	aurahttp "github.com/aretw0/aura/pkg/adapters/http"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeBank echoes transfers back so the wire round trip can be asserted.
type fakeBank struct {
	mu        sync.Mutex
	transfers []domain.TransferRequest
	refuse    error
}

func (b *fakeBank) Authenticate(ctx context.Context, id, password string) (bool, error) {
	return id == "1234" && password == "p@sswOrd", nil
}

func (b *fakeBank) Accounts(ctx context.Context, userID string) ([]domain.UserAccount, error) {
	if userID != "1234" {
		return nil, domain.ErrCustomerNotFound
	}
	return []domain.UserAccount{
		{ID: "1", IsPrimary: true, Balance: decimal.RequireFromString("2354.23")},
		{ID: "2", Balance: decimal.RequireFromString("235.22")},
	}, nil
}

func (b *fakeBank) Transfer(ctx context.Context, req domain.TransferRequest) (domain.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refuse != nil {
		return domain.Receipt{}, b.refuse
	}
	b.transfers = append(b.transfers, req)
	return domain.Receipt{ID: "r1", SenderID: req.SenderID, RecipientID: req.RecipientID, Amount: req.Amount}, nil
}

func newBankServer(t *testing.T, bank *fakeBank, opts ...aurahttp.ServerOption) (*httptest.Server, *aurahttp.Client) {
	t.Helper()
	handler, err := aurahttp.NewHandler(bank, opts...)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, newTestClient(t, srv.URL)
}

func TestServer_LoginRoundTrip(t *testing.T) {
	_, client := newBankServer(t, &fakeBank{})
	ctx := context.Background()

	resp, err := client.Login(ctx, domain.LoginRequest{ID: "1234", Password: "p@sswOrd"})
	require.NoError(t, err)
	assert.True(t, resp.Granted())

	resp, err = client.Login(ctx, domain.LoginRequest{ID: "1234", Password: "nope"})
	require.NoError(t, err)
	assert.False(t, resp.Granted())
}

func TestServer_TransferRoundTripPreservesFields(t *testing.T) {
	bank := &fakeBank{}
	_, client := newBankServer(t, bank)

	amounts := []string{"123.45", "0.01", "99999999.99", "10"}
	for _, a := range amounts {
		req := domain.TransferRequest{SenderID: "1234", RecipientID: "5678", Amount: decimal.RequireFromString(a)}
		resp, err := client.Transfer(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.Succeeded())
	}

	require.Len(t, bank.transfers, len(amounts))
	for i, a := range amounts {
		got := bank.transfers[i]
		assert.Equal(t, "1234", got.SenderID)
		assert.Equal(t, "5678", got.RecipientID)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString(a)), "amount %s became %s", a, got.Amount)
	}
}

func TestServer_TransferRefusalIsLogical(t *testing.T) {
	_, client := newBankServer(t, &fakeBank{refuse: domain.ErrInsufficientFunds})

	resp, err := client.Transfer(context.Background(), domain.TransferRequest{
		SenderID: "1234", RecipientID: "5678", Amount: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.False(t, resp.Succeeded())
}

func TestServer_AccountsUnknownCustomer(t *testing.T) {
	_, client := newBankServer(t, &fakeBank{})

	accounts, err := client.FetchAccounts(context.Background(), "1234")
	require.NoError(t, err)
	primary, ok := domain.PrimaryAccount(accounts)
	require.True(t, ok)
	assert.Equal(t, "2354.23", primary.Balance.StringFixed(2))

	_, err = client.FetchAccounts(context.Background(), "9999")
	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
}

func TestServer_RejectsInvalidBody(t *testing.T) {
	srv, _ := newBankServer(t, &fakeBank{})

	resp, err := http.Post(srv.URL+"/transfer", "application/json",
		strings.NewReader(`{"sender":"1234","recipient":"5678","amount":"lots"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Post(srv.URL+"/login", "application/json", strings.NewReader(`{"id":"1234"}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestServer_LoginThrottle(t *testing.T) {
	_, client := newBankServer(t, &fakeBank{}, aurahttp.WithLoginRate(rate.Limit(0.001), 2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Login(ctx, domain.LoginRequest{ID: "1234", Password: "x"})
		require.NoError(t, err)
	}

	_, err := client.Login(ctx, domain.LoginRequest{ID: "1234", Password: "p@sswOrd"})
	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusTooManyRequests, serverErr.StatusCode)

	// Other identifiers have their own budget.
	_, err = client.Login(ctx, domain.LoginRequest{ID: "5678", Password: "x"})
	assert.NoError(t, err)
}

func TestServer_HealthAndSpec(t *testing.T) {
	srv, _ := newBankServer(t, &fakeBank{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(aurahttp.RequestIDHeader))

	resp, err = http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(aurahttp.Spec()), "/accounts/{id}")
}
