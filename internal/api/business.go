package api

import (
	"context"
	"fmt"
	"net/http"

	"marketplace-admin/internal/models"
)

// ListBusinessPartners fetches every partner document.
func (c *Client) ListBusinessPartners(ctx context.Context) ([]models.BusinessPartner, error) {
	var partners []models.BusinessPartner
	if err := c.getJSON(ctx, "business-partner", "/business-partner/all", &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// UpdateBusinessPartner sends the whole document back. The API replaces
// the stored record; there is no partial patch.
func (c *Client) UpdateBusinessPartner(ctx context.Context, partner models.BusinessPartner) error {
	return c.sendJSON(ctx, "business-partner", http.MethodPut, "/business-partner", partner, nil)
}

// CountBusinessPartners normalizes the count endpoint's two response
// shapes to a plain int.
func (c *Client) CountBusinessPartners(ctx context.Context) (int, error) {
	var count models.FlexibleCount
	if err := c.getJSON(ctx, "business-partner", "/business-partner/count", &count); err != nil {
		return 0, err
	}
	return count.Int(), nil
}

// DeleteBusinessPartner removes one partner by id.
func (c *Client) DeleteBusinessPartner(ctx context.Context, id int64) error {
	return c.delete(ctx, "business-partner", fmt.Sprintf("/business-partner/%d", id))
}
