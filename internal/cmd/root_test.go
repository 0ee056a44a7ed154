package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/cart"
	"github.com/NikitArias/online-store-loyalty/internal/localstore"
	"github.com/NikitArias/online-store-loyalty/internal/models"
	"github.com/NikitArias/online-store-loyalty/internal/session"
)

func anonymousApp(t *testing.T) *app {
	t.Helper()
	client := api.New("http://localhost:0", 0)
	storage, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	sync := cart.New(client, nil)
	sess := session.New(client, sync, storage, nil)
	sess.Restore(context.Background())
	return &app{api: client, cart: sync, session: sess}
}

func TestTokenRefusedWhileAnonymous(t *testing.T) {
	// Cart writes and other authenticated commands must fail locally,
	// before any request leaves the machine.
	a := anonymousApp(t)

	_, err := a.token()

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)
}

func TestStatusLabel(t *testing.T) {
	assert.Contains(t, statusLabel(models.StatusSent), "on the way")
	assert.Contains(t, statusLabel(models.StatusDelivered), "delivered")
	assert.Equal(t, "SOMETHING", statusLabel("SOMETHING"))
}

func TestBonusLabelFallsBack(t *testing.T) {
	assert.Equal(t, "Loyalty bonus", bonusLabel(""))
	assert.Equal(t, "First order", bonusLabel("First order"))
}
