// Package store holds the client-side category and spending collections.
//
// Both stores follow mutate-then-reload: a mutation is sent to the remote
// store and, on success, the whole collection is fetched again and swapped in.
// A failed mutation never touches the cached collection. Round trips are not
// queued; whichever reload response arrives last is the one kept. The mutex
// only guards the swap itself.
package store

import (
	"context"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// Limits applied to each surfaced error message, in runes.
const (
	CategoryMessageLimit = 100
	SpendingMessageLimit = 80
)

// CategorySyncer is the remote side of the category store.
type CategorySyncer interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// SpendingSyncer is the remote side of the transaction store.
type SpendingSyncer interface {
	ListSpendings(ctx context.Context) ([]models.Spending, error)
	CreateSpending(ctx context.Context, in models.SpendingInput) (*models.Spending, error)
	UpdateSpending(ctx context.Context, id uint, in models.SpendingInput) (*models.Spending, error)
	DeleteSpending(ctx context.Context, id uint) error
}

// failure converts err into what a store returns: ctx.Err() once the caller
// has given up, otherwise the flattened and truncated AppError.
func failure(ctx context.Context, err error, limit int) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return apperrors.Surface(err, limit)
}

// refreshFailure reports a mutation that succeeded remotely but whose reload
// did not.
func refreshFailure(ctx context.Context, err error, limit int) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	surfaced := apperrors.Surface(err, limit)
	out := apperrors.Wrap(apperrors.ErrRefreshFailed, surfaced)
	out.Fields = surfaced.Fields
	return out
}
