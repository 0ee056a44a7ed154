package cart

import (
	"context"
	"math"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// Line is one cart row prepared for display: the quantity priced at the
// catalog's current unit price, with the previously quoted line total kept
// alongside when the price moved so the delta can be shown.
type Line struct {
	Product   models.Product
	Quantity  int
	UnitPrice float64
	PrevTotal float64 // 0 when the price did not change
	Total     float64
}

// View is the fully reconciled cart page state.
type View struct {
	Order           *models.Order
	Lines           []Line
	Total           float64
	FinalPrice      float64
	DiscountPercent int
	BonusTitle      string
}

// Empty reports whether there is nothing to show.
func (v *View) Empty() bool {
	return len(v.Lines) == 0
}

// Discounted reports whether the server quoted a price below the summed
// total, i.e. a loyalty bonus applies.
func (v *View) Discounted() bool {
	return v.DiscountPercent > 0
}

// Reconcile hydrates and builds the cart page view. Unit prices are
// re-fetched from the catalog rather than trusted from the order snapshot;
// when the catalog fetch fails the stale snapshot prices are used and the
// failure is logged, since a priced-but-stale cart beats no cart.
func (s *Synchronizer) Reconcile(ctx context.Context, token string) (*View, error) {
	if token == "" {
		return &View{}, nil
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	active, err := s.api.ActiveCartFor(ctx, token)
	if err != nil {
		return nil, err
	}

	// Same stale-response rule as Hydrate: the view is still built from
	// this fetch, but the shared snapshot keeps whatever a newer hydrate
	// installed while this one was in flight.
	s.mu.Lock()
	if gen == s.generation {
		s.applyLocked(active)
	}
	s.mu.Unlock()

	if active == nil || active.Order == nil {
		return &View{}, nil
	}

	current := make(map[int]float64)
	ids := make([]int, 0, len(active.Order.Items))
	for _, it := range active.Order.Items {
		ids = append(ids, it.Product.ID)
	}
	products, err := s.api.ProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("price refresh failed, using quoted prices", "error", err)
	} else {
		for _, p := range products {
			current[p.ID] = p.Price
		}
	}

	view := &View{
		Order:      active.Order,
		FinalPrice: active.FinalPrice,
		BonusTitle: active.BonusTitle,
	}
	for _, it := range active.Order.Items {
		unit := it.Price
		if price, ok := current[it.Product.ID]; ok {
			unit = price
		}
		line := Line{
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Total:     unit * float64(it.Quantity),
		}
		if prev := it.Price * float64(it.Quantity); prev != line.Total {
			line.PrevTotal = prev
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.Total
	}
	view.DiscountPercent = DiscountPercent(view.Total, view.FinalPrice)
	return view, nil
}

// DiscountPercent derives the displayed discount from the locally summed
// total and the server-quoted final price. A zero total never yields a
// discount (nothing to divide by), nor does a final price at or above total.
func DiscountPercent(total, finalPrice float64) int {
	if total <= 0 || finalPrice <= 0 || finalPrice >= total {
		return 0
	}
	return int(math.Round((1 - finalPrice/total) * 100))
}
