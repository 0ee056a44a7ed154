package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/cart"
	"github.com/NikitArias/online-store-loyalty/internal/localstore"
	"github.com/NikitArias/online-store-loyalty/internal/models"
	"github.com/NikitArias/online-store-loyalty/internal/session"
	"github.com/NikitArias/online-store-loyalty/internal/storetest"
)

// wire assembles the full client stack against a fresh fake backend, the
// same way the command layer does at startup.
func wire(t *testing.T, statePath string) (*api.Client, *cart.Synchronizer, *session.Store, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, 5*time.Second)
	storage, err := localstore.Open(statePath)
	require.NoError(t, err)
	sync := cart.New(client, nil)
	return client, sync, session.New(client, sync, storage, nil), srv
}

func TestLoginThenHydrateReflectsServerCart(t *testing.T) {
	client, sync, sess, srv := wire(t, filepath.Join(t.TempDir(), "state.json"))
	srv.AddAccount(storetest.Account{
		ID: 3, Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: models.RoleUser,
	})
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	srv.SeedCart(3, models.OrderItem{
		Product: models.Product{ID: 10, Name: "Mug", Price: 100}, Quantity: 2, Price: 100,
	})
	ctx := context.Background()

	identity, err := client.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	sess.Login(ctx, identity)

	assert.Equal(t, session.Authenticated, sess.Phase())
	assert.Equal(t, 1, sync.DistinctCount())
	assert.Equal(t, 2, sync.Quantity(10))
}

func TestRestoreFromPreviousRun(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	// First run: log in, which persists the identity and token.
	client, _, sess, srv := wire(t, statePath)
	srv.AddAccount(storetest.Account{
		ID: 3, Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: models.RoleUser,
	})
	srv.SeedCart(3, models.OrderItem{
		Product: models.Product{ID: 10, Price: 100}, Quantity: 1, Price: 100,
	})
	ctx := context.Background()
	identity, err := client.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	sess.Login(ctx, identity)

	// Second run against the same state file and backend: the session comes
	// back without credentials and the cart re-hydrates.
	client2 := api.New(srv.URL, 5*time.Second)
	storage2, err := localstore.Open(statePath)
	require.NoError(t, err)
	sync2 := cart.New(client2, nil)
	sess2 := session.New(client2, sync2, storage2, nil)

	sess2.Restore(ctx)

	restored, ok := sess2.Current()
	require.True(t, ok)
	assert.Equal(t, "Ann", restored.Name)
	assert.Equal(t, storetest.TokenFor(3), sess2.Token())
	assert.Equal(t, 1, sync2.DistinctCount())
}

func TestReconcilePicksUpServerRepricing(t *testing.T) {
	client, sync, sess, srv := wire(t, filepath.Join(t.TempDir(), "state.json"))
	srv.AddAccount(storetest.Account{
		ID: 3, Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: models.RoleUser,
	})
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	ctx := context.Background()

	identity, err := client.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	sess.Login(ctx, identity)
	require.NoError(t, client.AddItem(ctx, identity.Token, 10))

	// The price changes server-side between the add and the cart view.
	srv.SetProductPrice(10, 80)

	view, err := sync.Reconcile(ctx, sess.Token())
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.InDelta(t, 80.0, view.Lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 80.0, view.Lines[0].Total, 1e-9)
	assert.InDelta(t, 100.0, view.Lines[0].PrevTotal, 1e-9)
}

func TestLogoutWipesStateFile(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	client, sync, sess, srv := wire(t, statePath)
	srv.AddAccount(storetest.Account{
		ID: 3, Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: models.RoleUser,
	})
	srv.SeedCart(3, models.OrderItem{
		Product: models.Product{ID: 10, Price: 100}, Quantity: 1, Price: 100,
	})
	ctx := context.Background()
	identity, err := client.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	sess.Login(ctx, identity)
	require.Equal(t, 1, sync.DistinctCount())

	sess.Logout(ctx)

	assert.Equal(t, 1, srv.LogoutCalls)
	assert.Equal(t, session.Anonymous, sess.Phase())
	assert.Equal(t, 0, sync.DistinctCount())

	// A brand-new store over the same file sees nothing.
	storage, err := localstore.Open(statePath)
	require.NoError(t, err)
	assert.Equal(t, 0, storage.Len())
}
