package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// ProductReviews lists a product's reviews. Public, no token.
func (c *Client) ProductReviews(ctx context.Context, productID int) ([]models.Review, error) {
	var out []models.Review
	if err := c.get(ctx, fmt.Sprintf("/reviews/%d", productID), "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReviews lists the authenticated user's own reviews.
func (c *Client) MyReviews(ctx context.Context, token string) ([]models.Review, error) {
	var out []models.Review
	if err := c.get(ctx, "/reviews/user", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitReview creates the user's review for a product. The backend takes
// rating and comment as query parameters, one review per (user, product).
func (c *Client) SubmitReview(ctx context.Context, token string, productID, rating int, comment string) error {
	path := fmt.Sprintf("/reviews/product/%d?rating=%d&comment=%s",
		productID, rating, url.QueryEscape(comment))
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

// DeleteMyReview removes the user's own review for a product.
func (c *Client) DeleteMyReview(ctx context.Context, token string, productID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/product/%d", productID), token, nil, nil)
}
