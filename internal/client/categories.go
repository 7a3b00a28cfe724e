package client

import (
	"context"
	"fmt"
	"net/http"

	"spendly/internal/models"
)

const categoriesPath = "/transactions/categories/"

func categoryPath(id uint) string {
	return fmt.Sprintf("%s%d/", categoriesPath, id)
}

// ListCategories fetches every category of the session's user.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.doJSON(ctx, http.MethodGet, categoriesPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Category{}
	}
	return out, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Parent = models.NormalizeID(in.Parent)
	var out models.Category
	if err := c.doJSON(ctx, http.MethodPost, categoriesPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory applies a partial update to a category.
func (c *Client) UpdateCategory(ctx context.Context, id uint, patch models.CategoryPatch) (*models.Category, error) {
	var out models.Category
	if err := c.doJSON(ctx, http.MethodPatch, categoryPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, categoryPath(id), nil, nil)
}
