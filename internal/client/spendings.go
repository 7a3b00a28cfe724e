package client

import (
	"context"
	"fmt"
	"net/http"

	"spendly/internal/models"
)

const spendingsPath = "/transactions/spendings/"

func spendingPath(id uint) string {
	return fmt.Sprintf("%s%d/", spendingsPath, id)
}

// ListSpendings fetches every spending of the session's user, newest first.
func (c *Client) ListSpendings(ctx context.Context) ([]models.Spending, error) {
	var out []models.Spending
	if err := c.doJSON(ctx, http.MethodGet, spendingsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Spending{}
	}
	return out, nil
}

// CreateSpending creates a spending.
func (c *Client) CreateSpending(ctx context.Context, in models.SpendingInput) (*models.Spending, error) {
	var out models.Spending
	if err := c.doJSON(ctx, http.MethodPost, spendingsPath, in.Normalize(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSpending replaces the editable fields of a spending.
func (c *Client) UpdateSpending(ctx context.Context, id uint, in models.SpendingInput) (*models.Spending, error) {
	var out models.Spending
	if err := c.doJSON(ctx, http.MethodPatch, spendingPath(id), in.Normalize(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSpending deletes a spending.
func (c *Client) DeleteSpending(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, spendingPath(id), nil, nil)
}
