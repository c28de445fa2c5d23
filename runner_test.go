package aura_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aretw0/aura"
	"github.com/aretw0/aura/pkg/adapters/http"
	"github.com/aretw0/aura/pkg/adapters/memory"
	"github.com/aretw0/aura/pkg/ledger"
)

func TestRunner_Script(t *testing.T) {
	ts := startBank(t)
	app, err := aura.New(aura.WithBaseURL(ts.URL + "/"))
	require.NoError(t, err)

	script := strings.Join([]string{
		"alice", "wrong", // declined
		"y",              // try again
		"alice", "secret",
		"t", "bob", "1,50", // invalid amount, back to menu
		"t", "bob", "20.45",
		"d",             // disconnect
		"bob", "hunter2",
		"q",
	}, "\n") + "\n"

	var out bytes.Buffer
	r := &aura.Runner{Input: strings.NewReader(script), Output: &out, Headless: true}
	require.NoError(t, r.Run(context.Background(), app))

	text := out.String()
	assert.Contains(t, text, "login failed")
	assert.Contains(t, text, "Welcome, alice.")
	assert.Contains(t, text, "Balance: **120.46**")
	assert.Contains(t, text, "Enter a recipient and a positive amount")
	assert.Contains(t, text, "Transfer sent.")
	assert.Contains(t, text, "Balance: **100.01**", "home refreshes after a transfer")
	assert.Contains(t, text, "Disconnected.")
	assert.Contains(t, text, "Welcome, bob.")
	assert.Contains(t, text, "Balance: **20.45**")
}

func TestRunner_EOFEndsCleanly(t *testing.T) {
	app, err := aura.New()
	require.NoError(t, err)

	var out bytes.Buffer
	r := &aura.Runner{Input: strings.NewReader(""), Output: &out, Headless: true}
	assert.NoError(t, r.Run(context.Background(), app))
}

func TestRunner_RequiresIO(t *testing.T) {
	app, err := aura.New()
	require.NoError(t, err)
	assert.Error(t, (&aura.Runner{}).Run(context.Background(), app))
}

func TestRunner_PasswordReadVerbatim(t *testing.T) {
	ctx := context.Background()
	bank := ledger.New(memory.NewStore(), ledger.WithHashCost(bcrypt.MinCost))
	require.NoError(t, bank.Register(ctx, "dave", " exit ", nil))
	require.NoError(t, bank.Register(ctx, "erin", "quit", nil))
	handler, err := http.NewHandler(bank)
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	app, err := aura.New(aura.WithBaseURL(ts.URL + "/"))
	require.NoError(t, err)

	script := "dave\n exit \r\nd\nerin\nquit\nq\n"
	var out bytes.Buffer
	r := &aura.Runner{Input: strings.NewReader(script), Output: &out, Headless: true}
	require.NoError(t, r.Run(ctx, app))

	text := out.String()
	assert.Contains(t, text, "Welcome, dave.")
	assert.Contains(t, text, "Welcome, erin.")
	assert.NotContains(t, text, "login failed")
}
