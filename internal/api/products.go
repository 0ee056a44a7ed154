package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// Products lists the whole customer-facing catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.get(ctx, "/products/user", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductsByIDs fetches current product records for the given ids, used to
// re-quote cart line prices.
func (c *Client) ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	var out []models.Product
	err := c.get(ctx, "/products/user?ids="+strings.Join(parts, ","), "", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProductsByCategory lists the catalog filtered to one category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	var out []models.Product
	err := c.get(ctx, fmt.Sprintf("/products/user/category/%d", categoryID), "", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single catalog record.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var out models.Product
	if err := c.get(ctx, fmt.Sprintf("/products/user/%d", id), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists categories without product counts.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, "/categories/without", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoriesFull lists categories with their products attached.
func (c *Client) CategoriesFull(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, "/categories/full", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}
