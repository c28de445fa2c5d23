package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	aurahttp "github.com/aretw0/aura/pkg/adapters/http"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string, opts ...aurahttp.ClientOption) *aurahttp.Client {
	t.Helper()
	c, err := aurahttp.NewClient(url, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(aurahttp.RequestIDHeader))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		granted := body["id"] == "u1" && body["password"] == "p1"
		json.NewEncoder(w).Encode(map[string]bool{"granted": granted})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	resp, err := c.Login(ctx, domain.LoginRequest{ID: "u1", Password: "p1"})
	require.NoError(t, err)
	assert.True(t, resp.Granted())

	resp, err = c.Login(ctx, domain.LoginRequest{ID: "u1", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, resp.Granted())
}

func TestClient_FetchAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts/12%2F34", r.URL.EscapedPath())
		io.WriteString(w, `[{"id":"1","main":true,"balance":2000.0},{"id":"2","main":false,"balance":345.1}]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api/")
	accounts, err := c.FetchAccounts(context.Background(), "12/34")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].IsPrimary)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("2000")))
	assert.Equal(t, "345.1", accounts[1].Balance.String())
}

func TestClient_TransferKeepsAmountDigits(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		io.WriteString(w, `{"result":true}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.Transfer(context.Background(), domain.TransferRequest{
		SenderID:    "1234",
		RecipientID: "5678",
		Amount:      decimal.RequireFromString("123.45"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Succeeded())
	assert.JSONEq(t, `{"sender":"1234","recipient":"5678","amount":123.45}`, raw)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), domain.LoginRequest{ID: "u", Password: "p"})

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, aurahttp.WithTimeout(50*time.Millisecond))
	_, err := c.FetchAccounts(context.Background(), "1")

	var connErr *domain.ConnectivityError
	require.ErrorAs(t, err, &connErr)
	assert.True(t, connErr.TimedOut)
	assert.False(t, connErr.ConnectionRefused)
}

func TestClient_ConnectionRefused(t *testing.T) {
	// Grab a free port and close it so nothing listens there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c := newTestClient(t, "http://"+addr)
	_, err = c.Transfer(context.Background(), domain.TransferRequest{SenderID: "a", RecipientID: "b", Amount: decimal.NewFromInt(1)})

	var connErr *domain.ConnectivityError
	require.ErrorAs(t, err, &connErr)
	assert.True(t, connErr.ConnectionRefused)
}

func TestClient_MalformedBodyIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), domain.LoginRequest{ID: "u", Password: "p"})

	var unknown *domain.UnknownError
	assert.ErrorAs(t, err, &unknown)
}

func TestClient_OneRequestPerCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var events []*domain.RequestEvent
	hooks := domain.LifecycleHooks{
		OnRequest: func(ctx context.Context, e *domain.RequestEvent) { events = append(events, e) },
	}

	c := newTestClient(t, srv.URL, aurahttp.WithHooks(hooks))
	_, err := c.FetchAccounts(context.Background(), "1")
	require.Error(t, err)

	assert.Equal(t, int32(1), hits.Load(), "no retries")
	require.Len(t, events, 1)
	assert.Equal(t, "accounts", events[0].Op)
	assert.Equal(t, http.StatusBadGateway, events[0].StatusCode)
	assert.Error(t, events[0].Err)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := aurahttp.NewClient("localhost:8080")
	assert.Error(t, err)

	c, err := aurahttp.NewClient("")
	require.NoError(t, err)
	assert.NotNil(t, c)
}
