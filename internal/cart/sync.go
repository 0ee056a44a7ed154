// Package cart keeps the client-side cart snapshot in sync with the server.
// The snapshot is replaced wholesale by Hydrate and never mutated locally:
// every cart write goes to the backend first and is followed by a re-hydrate,
// so what consumers see is always the last successful server read (or the
// initial empty state), never a partially applied local mutation.
package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// backend is the slice of the REST client the synchronizer consumes.
type backend interface {
	ActiveCartFor(ctx context.Context, token string) (*api.ActiveCart, error)
	ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error)
}

type Synchronizer struct {
	api    backend
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	items      []models.OrderItem
	order      *models.Order
	finalPrice float64
	bonusTitle string
}

func New(b backend, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{api: b, logger: logger}
}

// Hydrate replaces the snapshot with the server's active order. An empty
// token is a no-op; a fetch failure is logged and leaves the prior snapshot
// untouched. A hydrate that finishes after a newer one has started discards
// its result, so a stale response can never overwrite newer state.
func (s *Synchronizer) Hydrate(ctx context.Context, token string) {
	if token == "" {
		return
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	active, err := s.api.ActiveCartFor(ctx, token)
	if err != nil {
		s.logger.Warn("cart hydration failed", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.applyLocked(active)
}

// applyLocked installs a fetched active cart (nil means no active order).
func (s *Synchronizer) applyLocked(active *api.ActiveCart) {
	if active == nil || active.Order == nil {
		s.items = nil
		s.order = nil
		s.finalPrice = 0
		s.bonusTitle = ""
		return
	}
	s.items = append([]models.OrderItem(nil), active.Order.Items...)
	orderCopy := *active.Order
	s.order = &orderCopy
	s.finalPrice = active.FinalPrice
	s.bonusTitle = active.BonusTitle
}

// Items returns a copy of the current snapshot's line items.
func (s *Synchronizer) Items() []models.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OrderItem(nil), s.items...)
}

// Order returns the active order backing the cart, if any.
func (s *Synchronizer) Order() (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return models.Order{}, false
	}
	return *s.order, true
}

// DistinctCount is the cart badge number: how many different products the
// cart holds, not the summed quantity.
func (s *Synchronizer) DistinctCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{}, len(s.items))
	for _, it := range s.items {
		seen[it.Product.ID] = struct{}{}
	}
	return len(seen)
}

// Quantity returns the snapshot quantity for one product, 0 when absent.
func (s *Synchronizer) Quantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Product.ID == productID {
			return it.Quantity
		}
	}
	return 0
}

// Clear resets the synchronizer to the initial empty state (logout).
func (s *Synchronizer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.applyLocked(nil)
}
