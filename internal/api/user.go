package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// Profile fetches the user's full profile record.
func (c *Client) Profile(ctx context.Context, token string, userID int) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, fmt.Sprintf("/user/%d", userID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves name, phone (bare digits) and address.
func (c *Client) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPut, "/user/update", token, req, nil)
}

// ChangePassword swaps the account password.
func (c *Client) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/user/password", token, req, nil)
}

// Achievements lists the full achievement catalog. Public, no token.
func (c *Client) Achievements(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	if err := c.get(ctx, "/achievements", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnlockedAchievements lists the achievements granted to the user.
func (c *Client) UnlockedAchievements(ctx context.Context, token string) ([]models.UnlockedAchievement, error) {
	var out []models.UnlockedAchievement
	if err := c.get(ctx, "/user/achievements", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}
