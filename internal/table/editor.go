package table

import (
	"context"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// State is the inline-edit state of the table.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

type editor struct {
	active bool
	id     uint
	buffer models.SpendingInput
}

func (e *editor) reset() {
	*e = editor{}
}

// State returns Viewing or Editing.
func (c *Controller) State() State {
	if c.edit.active {
		return Editing
	}
	return Viewing
}

// EditingID returns the row being edited.
func (c *Controller) EditingID() (uint, bool) {
	return c.edit.id, c.edit.active
}

// Select starts editing the row with id, seeding the buffer from its current
// values. Any edit already in progress is discarded.
func (c *Controller) Select(id uint) error {
	row, ok := c.find(id)
	if !ok {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Spending not found.")
	}
	c.edit = editor{active: true, id: id, buffer: models.InputFrom(row)}
	return nil
}

// Buffer returns a copy of the edit buffer.
func (c *Controller) Buffer() (models.SpendingInput, bool) {
	if !c.edit.active {
		return models.SpendingInput{}, false
	}
	buf := c.edit.buffer
	if buf.Category != nil {
		id := *buf.Category
		buf.Category = &id
	}
	return buf, true
}

// Edit applies fn to the edit buffer. It does nothing while viewing.
func (c *Controller) Edit(fn func(in *models.SpendingInput)) bool {
	if !c.edit.active {
		return false
	}
	fn(&c.edit.buffer)
	return true
}

// Cancel discards the edit buffer.
func (c *Controller) Cancel() {
	c.edit.reset()
}

// Save sends the buffer as an update of the edited row. On success the
// controller returns to Viewing and re-reads the source. On failure it stays
// in Editing with the buffer intact, except when the update went through but
// the reload did not: then it leaves editing and syncs with whatever the
// source holds.
func (c *Controller) Save(ctx context.Context) (*models.Spending, error) {
	if !c.edit.active {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No row is being edited.")
	}
	updated, err := c.source.Update(ctx, c.edit.id, c.edit.buffer)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrRefreshFailed.Code) {
			c.edit.reset()
			c.Sync()
		}
		return updated, err
	}
	c.edit.reset()
	c.Sync()
	return updated, nil
}
