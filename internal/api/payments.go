package api

import (
	"context"
	"fmt"

	"marketplace-admin/internal/models"
)

// ListPayments fetches the full payment collection.
func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.getJSON(ctx, "payment", "/payment/all", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPayment fetches one payment by id.
func (c *Client) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	var payment models.Payment
	if err := c.getJSON(ctx, "payment", fmt.Sprintf("/payment/%d", id), &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// DeletePayment removes one payment record by id.
func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.delete(ctx, "payment", fmt.Sprintf("/payment/%d", id))
}
