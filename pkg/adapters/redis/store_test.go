package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aura/pkg/adapters/redis"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunLedgerStoreContract(t, store)
}

func TestRedisStore_KeysAndPrefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	err := store.Save(ctx, &domain.Customer{
		ID:       "alice",
		Accounts: []domain.UserAccount{{ID: "a", IsPrimary: true, Balance: decimal.RequireFromString("0.30")}},
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:customer:alice"))
	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, members)

	raw, err := mr.Get("test:customer:alice")
	require.NoError(t, err)
	assert.Contains(t, raw, `"balance":"0.3"`, "balances are stored as exact decimal strings")
}

func TestRedisStore_New(t *testing.T) {
	mr, _ := newClient(t)

	store, err := redis.New("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer store.Close()
	assert.NoError(t, store.Ping(context.Background()))

	_, err = redis.New("not a url")
	assert.Error(t, err)
}
