package api_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/models"
	"github.com/NikitArias/online-store-loyalty/internal/storetest"
)

func newClient(t *testing.T) (*api.Client, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second), srv
}

func seedCustomer(srv *storetest.Server) storetest.Account {
	a := storetest.Account{
		ID: 3, Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: models.RoleUser,
	}
	srv.AddAccount(a)
	return a
}

func seedAdmin(srv *storetest.Server) storetest.Account {
	a := storetest.Account{
		ID: 1, Email: "root@example.com", Password: "secret1", Role: models.RoleAdmin,
	}
	srv.AddAccount(a)
	return a
}

func TestLogin(t *testing.T) {
	client, srv := newClient(t)
	seedCustomer(srv)

	identity, err := client.Login(context.Background(), models.Credentials{
		Email: "ann@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, identity.ID)
	assert.Equal(t, models.RoleUser, identity.Role)
	assert.Equal(t, "Ann", identity.Name)
	assert.Equal(t, storetest.TokenFor(3), identity.Token)
	assert.False(t, identity.IsAdmin())
}

func TestLoginBadCredentials(t *testing.T) {
	client, srv := newClient(t)
	seedCustomer(srv)

	_, err := client.Login(context.Background(), models.Credentials{
		Email: "ann@example.com", Password: "wrong",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, api.IsOffline(err))
}

func TestLoginBlockedAccount(t *testing.T) {
	client, srv := newClient(t)
	srv.AddAccount(storetest.Account{
		ID: 4, Email: "bob@example.com", Password: "secret1", Role: models.RoleUser, Blocked: true,
	})

	_, err := client.Login(context.Background(), models.Credentials{
		Email: "bob@example.com", Password: "secret1",
	})

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestIsOfflineOnUnreachableServer(t *testing.T) {
	srv := storetest.New()
	srv.Close()
	client := api.New(srv.URL, time.Second)

	_, err := client.Products(context.Background())

	require.Error(t, err)
	assert.True(t, api.IsOffline(err))
}

func TestActiveCartForEmptyBodyMeansNoCart(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)

	cart, err := client.ActiveCartFor(context.Background(), storetest.TokenFor(a.ID))

	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestActiveCartForReturnsEnvelope(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	srv.SeedCart(a.ID, models.OrderItem{
		Product: models.Product{ID: 10, Name: "Mug", Price: 100}, Quantity: 2, Price: 100,
	})
	srv.FinalPrice = 150
	srv.BonusTitle = "Loyal customer"

	cart, err := client.ActiveCartFor(context.Background(), storetest.TokenFor(a.ID))
	require.NoError(t, err)

	require.NotNil(t, cart)
	require.NotNil(t, cart.Order)
	assert.Equal(t, models.StatusProcessing, cart.Order.Status)
	assert.InDelta(t, 150.0, cart.FinalPrice, 1e-9)
	assert.Equal(t, "Loyal customer", cart.BonusTitle)
}

func TestActiveCartForServerError(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	srv.CartFailures = 1

	_, err := client.ActiveCartFor(context.Background(), storetest.TokenFor(a.ID))

	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "cart unavailable", apiErr.Message)
}

func TestCartItemLifecycle(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	token := storetest.TokenFor(a.ID)
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	ctx := context.Background()

	require.NoError(t, client.AddItem(ctx, token, 10))
	require.NoError(t, client.SetItemQuantity(ctx, token, 10, 3))

	cart, err := client.ActiveCartFor(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Order.Items, 1)
	assert.Equal(t, 3, cart.Order.Items[0].Quantity)

	// Decreasing down to zero removes the line and, with it, the order.
	require.NoError(t, client.DecreaseItem(ctx, token, 10))
	require.NoError(t, client.DecreaseItem(ctx, token, 10))
	require.NoError(t, client.DecreaseItem(ctx, token, 10))

	cart, err = client.ActiveCartFor(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestRemoveItemDropsEmptiedOrder(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	token := storetest.TokenFor(a.ID)
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	ctx := context.Background()

	require.NoError(t, client.AddItem(ctx, token, 10))
	require.NoError(t, client.RemoveItem(ctx, token, 10))

	cart, err := client.ActiveCartFor(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestAddItemOutOfStock(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 0})

	err := client.AddItem(context.Background(), storetest.TokenFor(a.ID), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of stock")
}

func TestPlaceAndCancelOrder(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	token := storetest.TokenFor(a.ID)
	srv.AddProduct(models.Product{ID: 10, Name: "Mug", Price: 100, StockQuantity: 5})
	ctx := context.Background()

	require.NoError(t, client.AddItem(ctx, token, 10))
	require.NoError(t, client.PlaceOrder(ctx, token))

	orders, err := client.Orders(ctx, token)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusSent, orders[0].Status)

	require.NoError(t, client.CancelOrder(ctx, token, orders[0].ID))

	orders, err = client.Orders(ctx, token)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusCancelled, orders[0].Status)
}

func TestCancelProcessingOrderRejected(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	orderID := srv.SeedCart(a.ID, models.OrderItem{
		Product: models.Product{ID: 10, Price: 100}, Quantity: 1, Price: 100,
	})

	err := client.CancelOrder(context.Background(), storetest.TokenFor(a.ID), orderID)

	assert.Error(t, err)
}

func TestProductsByIDs(t *testing.T) {
	client, srv := newClient(t)
	srv.AddProduct(models.Product{ID: 1, Name: "Mug", Price: 100, StockQuantity: 5})
	srv.AddProduct(models.Product{ID: 2, Name: "Cap", Price: 50, StockQuantity: 5})
	srv.AddProduct(models.Product{ID: 3, Name: "Pen", Price: 10, StockQuantity: 5})
	ctx := context.Background()

	products, err := client.ProductsByIDs(ctx, []int{1, 3})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = client.ProductsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, products, "empty id list never hits the network")
}

func TestReviewLifecycle(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	token := storetest.TokenFor(a.ID)
	ctx := context.Background()

	require.NoError(t, client.SubmitReview(ctx, token, 10, 5, "great mug & fast shipping"))

	reviews, err := client.ProductReviews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "great mug & fast shipping", reviews[0].Comment)

	mine, err := client.MyReviews(ctx, token)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	// One review per product per user.
	err = client.SubmitReview(ctx, token, 10, 4, "second thoughts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, client.DeleteMyReview(ctx, token, 10))
	reviews, err = client.ProductReviews(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSubmitReviewRatingOutOfRange(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)

	err := client.SubmitReview(context.Background(), storetest.TokenFor(a.ID), 10, 0, "")

	assert.Error(t, err)
}

func TestAdminEndpointsRejectCustomers(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)

	_, err := client.AdminUsers(context.Background(), storetest.TokenFor(a.ID))

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestAdminStats(t *testing.T) {
	client, srv := newClient(t)
	admin := seedAdmin(srv)
	customer := seedCustomer(srv)
	srv.AddProduct(models.Product{ID: 1, Name: "Mug", Price: 100, StockQuantity: 5})
	srv.AddProduct(models.Product{ID: 2, Name: "Cap", Price: 50, StockQuantity: 5})
	srv.SeedCart(customer.ID, models.OrderItem{
		Product: models.Product{ID: 1, Price: 100}, Quantity: 1, Price: 100,
	})

	stats, err := client.AdminStats(context.Background(), storetest.TokenFor(admin.ID))
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.ProductCount)
	assert.EqualValues(t, 1, stats.UserCount)
	assert.Equal(t, 1, stats.Orders.Processing)
}

func TestAdminOrderStatusFlow(t *testing.T) {
	client, srv := newClient(t)
	admin := seedAdmin(srv)
	customer := seedCustomer(srv)
	token := storetest.TokenFor(admin.ID)
	orderID := srv.SeedCart(customer.ID, models.OrderItem{
		Product: models.Product{ID: 1, Price: 100}, Quantity: 2, Price: 100,
	})
	ctx := context.Background()

	require.NoError(t, client.AdminSetOrderStatus(ctx, token, orderID, models.StatusDelivered))

	stats, err := client.AdminStats(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Orders.Delivered)
	assert.InDelta(t, 200.0, stats.Orders.TotalSales, 1e-9)
}

func TestProfileRoundTrip(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	token := storetest.TokenFor(a.ID)
	ctx := context.Background()

	require.NoError(t, client.UpdateProfile(ctx, token, models.UpdateProfileRequest{
		Name: "Ann Smith", Phone: "79123456789", Address: "Moscow",
	}))

	user, err := client.Profile(ctx, token, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", user.Name)
	assert.Equal(t, "79123456789", user.Phone)
	assert.Equal(t, "Moscow", user.Address)
}

func TestChangePasswordNeedsOldPassword(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	token := storetest.TokenFor(a.ID)
	ctx := context.Background()

	err := client.ChangePassword(ctx, token, models.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newpass1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong password")

	require.NoError(t, client.ChangePassword(ctx, token, models.ChangePasswordRequest{
		OldPassword: a.Password, NewPassword: "newpass1",
	}))
}

func TestAchievements(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)
	srv.Achievements = []models.Achievement{
		{ID: 1, Title: "First order", Description: "Place your first order"},
		{ID: 2, Title: "Regular", Description: "Place ten orders"},
	}
	srv.Unlock(a.ID, models.UnlockedAchievement{ID: 1, Title: "First order", BonusUsed: true})
	ctx := context.Background()

	catalog, err := client.Achievements(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)

	mine, err := client.UnlockedAchievements(ctx, storetest.TokenFor(a.ID))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].BonusUsed)
}

func TestLogoutCountsOnServer(t *testing.T) {
	client, srv := newClient(t)
	a := seedCustomer(srv)

	require.NoError(t, client.Logout(context.Background(), storetest.TokenFor(a.ID)))

	assert.Equal(t, 1, srv.LogoutCalls)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client, srv := newClient(t)
	seedCustomer(srv)

	_, err := client.Product(context.Background(), 999)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestErrorsIsDoesNotMatchAcrossSentinels(t *testing.T) {
	err := &api.APIError{Status: 401, Message: "nope"}

	assert.True(t, errors.Is(err, models.ErrUnauthorized))
	assert.False(t, errors.Is(err, models.ErrForbidden))
}
