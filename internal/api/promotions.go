package api

import (
	"context"
	"fmt"
	"net/http"

	"marketplace-admin/internal/models"
)

// ListPromotions fetches every promotion.
func (c *Client) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := c.getJSON(ctx, "promotions", "/promotions/all", &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

// AddPromotion creates a promotion and returns the stored record.
func (c *Client) AddPromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error) {
	var created models.Promotion
	if err := c.sendJSON(ctx, "promotions", http.MethodPost, "/promotions/add", promotion, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeletePromotion removes one promotion by id.
func (c *Client) DeletePromotion(ctx context.Context, id int64) error {
	return c.delete(ctx, "promotions", fmt.Sprintf("/promotions/delete/%d", id))
}
