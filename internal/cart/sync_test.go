package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// stubBackend lets each test script the active-cart and price responses.
type stubBackend struct {
	mu        sync.Mutex
	cartFn    func(token string) (*api.ActiveCart, error)
	products  []models.Product
	priceErr  error
	cartCalls int
	lastIDs   []int
}

func (s *stubBackend) ActiveCartFor(_ context.Context, token string) (*api.ActiveCart, error) {
	s.mu.Lock()
	s.cartCalls++
	fn := s.cartFn
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(token)
}

func (s *stubBackend) ProductsByIDs(_ context.Context, ids []int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIDs = ids
	return s.products, s.priceErr
}

func (s *stubBackend) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartCalls
}

func product(id int, price float64) models.Product {
	return models.Product{ID: id, Name: "p", Price: price, StockQuantity: 10}
}

func activeCart(items ...models.OrderItem) *api.ActiveCart {
	return &api.ActiveCart{
		Order: &models.Order{ID: 7, Status: models.StatusProcessing, Items: items},
	}
}

func TestHydrateWithoutTokenIsNoop(t *testing.T) {
	b := &stubBackend{}
	s := New(b, nil)

	s.Hydrate(context.Background(), "")

	assert.Equal(t, 0, b.calls())
	assert.Empty(t, s.Items())
}

func TestHydrateReplacesSnapshot(t *testing.T) {
	b := &stubBackend{cartFn: func(string) (*api.ActiveCart, error) {
		return activeCart(
			models.OrderItem{Product: product(1, 100), Quantity: 2, Price: 100},
		), nil
	}}
	s := New(b, nil)

	s.Hydrate(context.Background(), "tok")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	order, ok := s.Order()
	require.True(t, ok)
	assert.Equal(t, 7, order.ID)
}

func TestHydrateNoActiveOrderEmptiesCart(t *testing.T) {
	b := &stubBackend{cartFn: func(string) (*api.ActiveCart, error) {
		return activeCart(models.OrderItem{Product: product(1, 10), Quantity: 1, Price: 10}), nil
	}}
	s := New(b, nil)
	s.Hydrate(context.Background(), "tok")
	require.NotEmpty(t, s.Items())

	b.mu.Lock()
	b.cartFn = func(string) (*api.ActiveCart, error) { return nil, nil }
	b.mu.Unlock()
	s.Hydrate(context.Background(), "tok")

	assert.Empty(t, s.Items())
	_, ok := s.Order()
	assert.False(t, ok)
}

func TestHydrateFailureKeepsPriorSnapshot(t *testing.T) {
	b := &stubBackend{cartFn: func(string) (*api.ActiveCart, error) {
		return activeCart(models.OrderItem{Product: product(1, 10), Quantity: 3, Price: 10}), nil
	}}
	s := New(b, nil)
	s.Hydrate(context.Background(), "tok")

	b.mu.Lock()
	b.cartFn = func(string) (*api.ActiveCart, error) { return nil, errors.New("boom") }
	b.mu.Unlock()
	s.Hydrate(context.Background(), "tok")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestDistinctCountIgnoresDuplicateLines(t *testing.T) {
	// Two line entries for the same product plus one other product: the
	// badge counts products, not lines or quantity.
	b := &stubBackend{cartFn: func(string) (*api.ActiveCart, error) {
		return activeCart(
			models.OrderItem{Product: product(1, 10), Quantity: 1, Price: 10},
			models.OrderItem{Product: product(1, 10), Quantity: 4, Price: 10},
			models.OrderItem{Product: product(2, 20), Quantity: 1, Price: 20},
		), nil
	}}
	s := New(b, nil)
	s.Hydrate(context.Background(), "tok")

	assert.Equal(t, 2, s.DistinctCount())
}

func TestQuantityLookup(t *testing.T) {
	b := &stubBackend{cartFn: func(string) (*api.ActiveCart, error) {
		return activeCart(models.OrderItem{Product: product(5, 10), Quantity: 4, Price: 10}), nil
	}}
	s := New(b, nil)
	s.Hydrate(context.Background(), "tok")

	assert.Equal(t, 4, s.Quantity(5))
	assert.Equal(t, 0, s.Quantity(6))
}

func TestClearResetsToInitialState(t *testing.T) {
	b := &stubBackend{cartFn: func(string) (*api.ActiveCart, error) {
		return activeCart(models.OrderItem{Product: product(1, 10), Quantity: 1, Price: 10}), nil
	}}
	s := New(b, nil)
	s.Hydrate(context.Background(), "tok")
	require.NotEmpty(t, s.Items())

	s.Clear()

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.DistinctCount())
}

func TestStaleHydrateCannotOverwriteNewerState(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	stale := activeCart(models.OrderItem{Product: product(1, 10), Quantity: 9, Price: 10})
	fresh := activeCart(models.OrderItem{Product: product(2, 20), Quantity: 1, Price: 20})

	b := &stubBackend{}
	b.cartFn = func(string) (*api.ActiveCart, error) {
		close(started)
		<-release
		return stale, nil
	}
	s := New(b, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Hydrate(context.Background(), "tok")
	}()
	<-started

	// A newer hydrate starts and finishes while the first is in flight.
	b.mu.Lock()
	b.cartFn = func(string) (*api.ActiveCart, error) { return fresh, nil }
	b.mu.Unlock()
	s.Hydrate(context.Background(), "tok")

	close(release)
	wg.Wait()

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Product.ID, "stale response must be discarded")
}
