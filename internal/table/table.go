// Package table windows the cached spendings into fixed-size pages and
// drives single-row inline editing.
//
// A Controller reads snapshots from its source and never mutates them; it is
// meant to be owned by one goroutine and is not safe for concurrent use.
package table

import (
	"context"

	"spendly/internal/models"
	"spendly/internal/pagination"
)

// SpendingSource is the slice of the transaction store the controller needs.
type SpendingSource interface {
	List() []models.Spending
	Update(ctx context.Context, id uint, in models.SpendingInput) (*models.Spending, error)
}

// Controller pages over a snapshot of spendings.
type Controller struct {
	source SpendingSource
	pager  *pagination.Pager
	rows   []models.Spending
	edit   editor
}

// New returns a controller on page 1. It reads the source immediately.
func New(source SpendingSource, pageSize int) (*Controller, error) {
	pager, err := pagination.NewPager(pageSize)
	if err != nil {
		return nil, err
	}
	c := &Controller{source: source, pager: pager}
	c.Sync()
	return c, nil
}

// Sync re-reads the source snapshot and clamps the current page.
func (c *Controller) Sync() {
	c.rows = c.source.List()
	c.pager.SetTotal(len(c.rows))
	if c.edit.active {
		if _, ok := c.find(c.edit.id); !ok {
			c.edit.reset()
		}
	}
}

// Rows returns the visible slice of the current page.
func (c *Controller) Rows() []models.Spending {
	return pagination.Window(c.rows, c.pager.Current(), c.pager.Size())
}

// Page returns the visible slice with its page metadata.
func (c *Controller) Page() pagination.PageResponse[models.Spending] {
	return pagination.NewPageResponse(c.Rows(), c.pager.Current(), c.pager.Size(), int64(len(c.rows)))
}

// Len returns the number of spendings in the snapshot.
func (c *Controller) Len() int { return len(c.rows) }

// CurrentPage returns the 1-based current page.
func (c *Controller) CurrentPage() int { return c.pager.Current() }

// TotalPages returns the page count for display, never less than 1.
func (c *Controller) TotalPages() int { return c.pager.DisplayPages() }

// Next moves to the next page unless already on the last one.
func (c *Controller) Next() bool { return c.pager.Next() }

// Previous moves to the previous page unless already on the first one.
func (c *Controller) Previous() bool { return c.pager.Previous() }

// GoTo jumps to page, clamped to the valid range.
func (c *Controller) GoTo(page int) { c.pager.GoTo(page) }

func (c *Controller) find(id uint) (models.Spending, bool) {
	for _, s := range c.rows {
		if s.ID == id {
			return s, true
		}
	}
	return models.Spending{}, false
}
