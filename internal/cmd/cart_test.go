package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/models"
	"github.com/NikitArias/online-store-loyalty/internal/storetest"
)

func cartFixture(t *testing.T) (*app, string, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	srv.AddAccount(storetest.Account{
		ID: 3, Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: models.RoleUser,
	})
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	return &app{api: api.New(srv.URL, 5*time.Second)}, storetest.TokenFor(3), srv
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	a, token, _ := cartFixture(t)
	ctx := context.Background()
	require.NoError(t, a.api.AddItem(ctx, token, 10))

	require.NoError(t, setQuantity(ctx, a, token, 10, 3))

	cart, err := a.api.ActiveCartFor(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Order.Items, 1)
	assert.Equal(t, 3, cart.Order.Items[0].Quantity)
}

func TestSetQuantityBelowOneRoutesToRemoval(t *testing.T) {
	a, token, _ := cartFixture(t)
	ctx := context.Background()
	require.NoError(t, a.api.AddItem(ctx, token, 10))

	// The set endpoint rejects quantities below one; zero must go through
	// the decrease path, which drops the line and the emptied cart.
	require.NoError(t, setQuantity(ctx, a, token, 10, 0))

	cart, err := a.api.ActiveCartFor(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, cart)
}
