package sessionvalkey_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/jobwire/jobwire-go/internal/session"
	sessionvalkey "github.com/jobwire/jobwire-go/internal/session/valkey"
	"github.com/jobwire/jobwire-go/internal/storetest/valkeytest"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

var client valkey.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	valkeyClient, terminate := valkeytest.Start(ctx)
	client = valkeyClient

	code := m.Run()
	terminate(ctx)

	os.Exit(code)
}

func TestRepository_RoundTrip(t *testing.T) {
	r := sessionvalkey.NewRepository(client, "jobwire-roundtrip-test", time.Hour)

	want := jobwire.TokenPair{
		AccessToken:  "access-token-one",
		RefreshToken: "refresh-token-one",
		TokenType:    "bearer",
		ExpiresIn:    900,
	}
	require.NoError(t, r.Store(t.Context(), want))

	got, err := r.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_Load_Empty(t *testing.T) {
	r := sessionvalkey.NewRepository(client, "jobwire-empty-test", time.Hour)

	_, err := r.Load(t.Context())
	require.ErrorIs(t, err, session.ErrNoTokens)
}

func TestRepository_Store_Upsert(t *testing.T) {
	r := sessionvalkey.NewRepository(client, "jobwire-upsert-test", time.Hour)

	require.NoError(t, r.Store(t.Context(), jobwire.TokenPair{AccessToken: "first"}))
	require.NoError(t, r.Store(t.Context(), jobwire.TokenPair{AccessToken: "second"}))

	got, err := r.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "second", got.AccessToken)
}

func TestRepository_Store_Expiry(t *testing.T) {
	r := sessionvalkey.NewRepository(client, "jobwire-expiry-test", time.Second)

	require.NoError(t, r.Store(t.Context(), jobwire.TokenPair{AccessToken: "short-lived"}))

	_, err := r.Load(t.Context())
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	_, err = r.Load(t.Context())
	require.ErrorIs(t, err, session.ErrNoTokens)
}

func TestRepository_Clear(t *testing.T) {
	r := sessionvalkey.NewRepository(client, "jobwire-clear-test", time.Hour)

	require.NoError(t, r.Store(t.Context(), jobwire.TokenPair{AccessToken: "acc"}))
	require.NoError(t, r.Clear(t.Context()))
	require.NoError(t, r.Clear(t.Context()), "clearing an empty slot is not an error")

	_, err := r.Load(t.Context())
	require.ErrorIs(t, err, session.ErrNoTokens)
}

func TestRepository_PrefixIsolation(t *testing.T) {
	one := sessionvalkey.NewRepository(client, "jobwire-iso-one", time.Hour)
	two := sessionvalkey.NewRepository(client, "jobwire-iso-two", time.Hour)

	require.NoError(t, one.Store(t.Context(), jobwire.TokenPair{AccessToken: "one"}))

	_, err := two.Load(t.Context())
	require.ErrorIs(t, err, session.ErrNoTokens)
}
