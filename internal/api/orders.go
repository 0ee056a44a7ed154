package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// ActiveCart is the response of GET /orders/user/cart: the PROCESSING order
// acting as the cart, the post-discount amount the server quotes for it and
// the title of the loyalty bonus that produced the discount.
type ActiveCart struct {
	Order      *models.Order
	FinalPrice float64
	BonusCode  string
	BonusTitle string
}

type cartEnvelope struct {
	Order             *models.Order `json:"order"`
	OrderAmount       float64       `json:"orderAmount"`
	AppliedBonusCode  string        `json:"appliedBonusCode"`
	AppliedBonusTitle string        `json:"appliedBonusTitle"`
}

// ActiveCartFor fetches the user's active cart. An empty response body means
// the user has no PROCESSING order and yields (nil, nil).
func (c *Client) ActiveCartFor(ctx context.Context, token string) (*ActiveCart, error) {
	var env cartEnvelope
	if err := c.get(ctx, "/orders/user/cart", token, &env); err != nil {
		return nil, err
	}
	if env.Order == nil {
		return nil, nil
	}
	final := env.OrderAmount
	if final == 0 {
		final = env.Order.FinalPrice
	}
	return &ActiveCart{
		Order:      env.Order,
		FinalPrice: final,
		BonusCode:  env.AppliedBonusCode,
		BonusTitle: env.AppliedBonusTitle,
	}, nil
}

type orderEnvelope struct {
	Order       models.Order `json:"order"`
	FinalPrice  float64      `json:"finalPrice"`
	OrderAmount float64      `json:"orderAmount"`
}

// Orders lists the user's order history, flattening the backend's
// {order, finalPrice} wrappers.
func (c *Client) Orders(ctx context.Context, token string) ([]models.Order, error) {
	var envs []orderEnvelope
	if err := c.get(ctx, "/orders/user", token, &envs); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(envs))
	for _, env := range envs {
		o := env.Order
		if o.FinalPrice == 0 {
			if env.FinalPrice != 0 {
				o.FinalPrice = env.FinalPrice
			} else {
				o.FinalPrice = env.OrderAmount
			}
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// AddItem puts one unit of the product into the active cart, creating the
// cart when none exists.
func (c *Client) AddItem(ctx context.Context, token string, productID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/items/%d", productID), token, nil, nil)
}

// SetItemQuantity sets the line quantity outright. The backend rejects
// quantities below 1; callers route those to DecreaseItem instead.
func (c *Client) SetItemQuantity(ctx context.Context, token string, productID, quantity int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/items/%d/%d", productID, quantity), token, nil, nil)
}

// DecreaseItem lowers the line quantity by one; at one, the line is removed.
func (c *Client) DecreaseItem(ctx context.Context, token string, productID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/items/%d/decrease", productID), token, nil, nil)
}

// RemoveItem deletes the line regardless of quantity.
func (c *Client) RemoveItem(ctx context.Context, token string, productID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/items/%d", productID), token, nil, nil)
}

// DeleteOrder removes an order wholesale; on the active cart this is the
// "clear cart" action.
func (c *Client) DeleteOrder(ctx context.Context, token string, orderID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), token, nil, nil)
}

// PlaceOrder requests the PROCESSING → SENT transition for the active cart.
func (c *Client) PlaceOrder(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPut, "/orders/sent", token, nil, nil)
}

// CancelOrder requests cancellation of a placed order.
func (c *Client) CancelOrder(ctx context.Context, token string, orderID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/cancel/%d", orderID), token, nil, nil)
}
