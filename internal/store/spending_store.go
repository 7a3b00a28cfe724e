package store

import (
	"context"
	"sync"

	"spendly/internal/logger"
	"spendly/internal/models"
	"spendly/internal/validator"
)

// TransactionStore owns the user's spending collection.
type TransactionStore struct {
	remote SpendingSyncer

	mu     sync.RWMutex
	items  []models.Spending
	index  map[uint]int
	loaded bool
}

// NewTransactionStore creates an empty store backed by remote.
func NewTransactionStore(remote SpendingSyncer) *TransactionStore {
	return &TransactionStore{
		remote: remote,
		index:  map[uint]int{},
	}
}

// Refresh fetches the whole collection and replaces the cache.
func (s *TransactionStore) Refresh(ctx context.Context) error {
	spendings, err := s.remote.ListSpendings(ctx)
	if err != nil {
		return failure(ctx, err, SpendingMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.swap(spendings)
	return nil
}

func (s *TransactionStore) swap(spendings []models.Spending) {
	items := make([]models.Spending, len(spendings))
	copy(items, spendings)
	index := make(map[uint]int, len(items))
	for i, sp := range items {
		index[sp.ID] = i
	}

	s.mu.Lock()
	s.items = items
	s.index = index
	s.loaded = true
	s.mu.Unlock()
}

// Loaded reports whether a fetch has completed.
func (s *TransactionStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// List returns a copy of the cached spendings in the order of the last fetch.
func (s *TransactionStore) List() []models.Spending {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Spending, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of cached spendings.
func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the cached spending with id.
func (s *TransactionStore) Get(id uint) (models.Spending, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Spending{}, false
	}
	return s.items[i], true
}

// Create creates a spending and reloads the collection. When only the reload
// fails, the created spending is returned together with a REFRESH_FAILED error.
func (s *TransactionStore) Create(ctx context.Context, in models.SpendingInput) (*models.Spending, error) {
	in = in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, failure(ctx, err, SpendingMessageLimit)
	}

	created, err := s.remote.CreateSpending(ctx, in)
	if err != nil {
		return nil, failure(ctx, err, SpendingMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Get().Debugw("spending created", "id", created.ID, "amount", created.Amount.String())

	if err := s.Refresh(ctx); err != nil {
		return created, refreshFailure(ctx, err, SpendingMessageLimit)
	}
	return created, nil
}

// Update replaces the editable fields of spending id and reloads the collection.
func (s *TransactionStore) Update(ctx context.Context, id uint, in models.SpendingInput) (*models.Spending, error) {
	in = in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, failure(ctx, err, SpendingMessageLimit)
	}

	updated, err := s.remote.UpdateSpending(ctx, id, in)
	if err != nil {
		return nil, failure(ctx, err, SpendingMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Get().Debugw("spending updated", "id", id)

	if err := s.Refresh(ctx); err != nil {
		return updated, refreshFailure(ctx, err, SpendingMessageLimit)
	}
	return updated, nil
}

// Delete deletes a spending and reloads the collection.
func (s *TransactionStore) Delete(ctx context.Context, id uint) error {
	if err := s.remote.DeleteSpending(ctx, id); err != nil {
		return failure(ctx, err, SpendingMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Get().Debugw("spending deleted", "id", id)

	if err := s.Refresh(ctx); err != nil {
		return refreshFailure(ctx, err, SpendingMessageLimit)
	}
	return nil
}
