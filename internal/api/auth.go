package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// loginResponse is the backend's login payload: a flat string map, id
// included as a string.
type loginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// Login exchanges credentials for an identity with a bearer token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return models.Identity{}, err
	}
	id, err := strconv.Atoi(resp.ID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("login response carried a bad user id %q: %w", resp.ID, err)
	}
	return models.Identity{
		ID:    id,
		Email: creds.Email,
		Name:  resp.Name,
		Role:  resp.Role,
		Token: resp.Token,
	}, nil
}

// Register creates an account. The caller validates the request first.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", req, nil)
}

// Logout revokes the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
