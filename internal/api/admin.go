package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// ProductInput is the admin create/update payload for a catalog product.
// Image is a URL; file upload storage is out of scope for this client.
type ProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Image         string  `json:"image,omitempty"`
	CategoryID    int     `json:"categoryId,omitempty"`
}

func (c *Client) AdminCreateProduct(ctx context.Context, token string, in ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products/create", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateProduct(ctx context.Context, token string, id int, in ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d", id), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDeleteProduct(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/product/%d", id), token, nil, nil)
}

func (c *Client) AdminCreateCategory(ctx context.Context, token, name string) (*models.Category, error) {
	var out models.Category
	in := models.Category{Name: name}
	if err := c.do(ctx, http.MethodPost, "/admin/category/create", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateCategory(ctx context.Context, token string, id int, name string) (*models.Category, error) {
	var out models.Category
	in := models.Category{Name: name}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/category/%d", id), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDeleteCategory(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/category/%d", id), token, nil, nil)
}

// AdminOrders lists every order in the system.
func (c *Client) AdminOrders(ctx context.Context, token string) ([]models.Order, error) {
	var out []models.Order
	if err := c.get(ctx, "/admin/orders", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminSetOrderStatus forces an order into the given status.
func (c *Client) AdminSetOrderStatus(ctx context.Context, token string, orderID int, status string) error {
	in := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", orderID), token, in, nil)
}

func (c *Client) AdminDeleteOrder(ctx context.Context, token string, orderID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/orders/%d", orderID), token, nil, nil)
}

// AdminUsers lists every customer account.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/admin/users", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminToggleUserBlock flips the blocked flag on an account.
func (c *Client) AdminToggleUserBlock(ctx context.Context, token string, userID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/block", userID), token, nil, nil)
}

// AdminUserReviews lists one user's reviews for moderation.
func (c *Client) AdminUserReviews(ctx context.Context, token string, userID int) ([]models.Review, error) {
	var out []models.Review
	if err := c.get(ctx, fmt.Sprintf("/admin/reviews/user/%d", userID), token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminDeleteReview removes any user's review.
func (c *Client) AdminDeleteReview(ctx context.Context, token string, userID, productID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/reviews/%d/%d", userID, productID), token, nil, nil)
}

// AdminStats aggregates the dashboard counters from the three stats
// endpoints.
type AdminStats struct {
	ProductCount int64
	UserCount    int64
	Orders       models.OrderStats
}

func (c *Client) AdminStats(ctx context.Context, token string) (*AdminStats, error) {
	var stats AdminStats
	if err := c.get(ctx, "/admin/stats/product-count", token, &stats.ProductCount); err != nil {
		return nil, err
	}
	if err := c.get(ctx, "/admin/stats/users-count", token, &stats.UserCount); err != nil {
		return nil, err
	}
	if err := c.get(ctx, "/admin/stats/orders", token, &stats.Orders); err != nil {
		return nil, err
	}
	return &stats, nil
}
