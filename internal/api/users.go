package api

import (
	"context"

	"marketplace-admin/internal/models"
)

// ListUsers fetches every platform user.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.getJSON(ctx, "user", "/user/all", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers normalizes the count endpoint's two response shapes.
func (c *Client) CountUsers(ctx context.Context) (int, error) {
	var count models.FlexibleCount
	if err := c.getJSON(ctx, "user", "/user/count", &count); err != nil {
		return 0, err
	}
	return count.Int(), nil
}
