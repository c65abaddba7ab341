package middleware_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/aretw0/thermoprops/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.NewPIIMiddleware([]string{"token", "^email$", "fluid"})(underlying)
	ctx := context.Background()

	raw := "email=a%40b.c&fluid=Argon&session_token=xyz&theme=dark"
	require.NoError(t, store.Save(ctx, "ws", raw))

	stored, err := underlying.Load(ctx, "ws")
	require.NoError(t, err)
	values, err := url.ParseQuery(stored)
	require.NoError(t, err)

	assert.Equal(t, "***", values.Get("email"))
	assert.Equal(t, "***", values.Get("session_token"))
	assert.Equal(t, "dark", values.Get("theme"))
	assert.Equal(t, "Argon", values.Get("fluid"), "workspace parameters are never masked")
}

func TestPIIMiddleware_PassThroughWhenNothingMatches(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.Chain(underlying, middleware.NewPIIMiddleware([]string{"token"}))
	ctx := context.Background()

	raw := "units=si&fluid=Argon"
	require.NoError(t, store.Save(ctx, "ws", raw))

	stored, err := store.Load(ctx, "ws")
	require.NoError(t, err)
	assert.Equal(t, raw, stored, "unmasked queries are stored verbatim")
}

func TestChain_Order(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"token"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ws", "fluid=Argon&token=abc"))
	loaded, err := store.Load(ctx, "ws")
	require.NoError(t, err)
	assert.Equal(t, "fluid=Argon&token=%2A%2A%2A", loaded)
}
