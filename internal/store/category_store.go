package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "spendly/internal/errors"
	"spendly/internal/logger"
	"spendly/internal/models"
	"spendly/internal/validator"
)

// CategoryStore owns the user's category collection.
type CategoryStore struct {
	remote CategorySyncer

	mu     sync.RWMutex
	tree   *models.CategoryTree
	loaded bool
}

// NewCategoryStore creates an empty store backed by remote.
func NewCategoryStore(remote CategorySyncer) *CategoryStore {
	return &CategoryStore{
		remote: remote,
		tree:   models.NewCategoryTree(nil),
	}
}

// Refresh fetches the whole collection and replaces the cache.
func (s *CategoryStore) Refresh(ctx context.Context) error {
	categories, err := s.remote.ListCategories(ctx)
	if err != nil {
		return failure(ctx, err, CategoryMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.swap(categories)
	return nil
}

func (s *CategoryStore) swap(categories []models.Category) {
	tree := models.NewCategoryTree(categories)
	s.mu.Lock()
	s.tree = tree
	s.loaded = true
	s.mu.Unlock()
}

// Loaded reports whether a fetch has completed.
func (s *CategoryStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Tree returns the current snapshot as an index. The tree is immutable.
func (s *CategoryStore) Tree() *models.CategoryTree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// List returns a copy of the cached categories in the order of the last fetch.
func (s *CategoryStore) List() []models.Category {
	return s.Tree().Items()
}

// Get returns the cached category with id.
func (s *CategoryStore) Get(id uint) (models.Category, bool) {
	return s.Tree().Get(id)
}

// ParentName returns the name of id's parent or "--".
func (s *CategoryStore) ParentName(id uint) string {
	return s.Tree().ParentName(id)
}

// Children returns the direct children of id.
func (s *CategoryStore) Children(id uint) []models.Category {
	return s.Tree().Children(id)
}

// Roots returns the top-level categories.
func (s *CategoryStore) Roots() []models.Category {
	return s.Tree().Roots()
}

// Path returns the display path of id, e.g. "Food -> Groceries".
func (s *CategoryStore) Path(id uint) string {
	return s.Tree().Path(id)
}

// Create creates a category under parent (nil for a top-level category) and
// reloads the collection. When only the reload fails, the created category
// is returned together with a REFRESH_FAILED error.
func (s *CategoryStore) Create(ctx context.Context, name string, parent *uint) (*models.Category, error) {
	in := models.CategoryInput{Name: name, Parent: models.NormalizeID(parent)}

	if err := s.checkInput(in); err != nil {
		return nil, failure(ctx, err, CategoryMessageLimit)
	}

	created, err := s.remote.CreateCategory(ctx, in)
	if err != nil {
		return nil, failure(ctx, err, CategoryMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Get().Debugw("category created", "id", created.ID, "name", created.Name)

	if err := s.Refresh(ctx); err != nil {
		return created, refreshFailure(ctx, err, CategoryMessageLimit)
	}
	return created, nil
}

// Update applies a partial update and reloads the collection.
func (s *CategoryStore) Update(ctx context.Context, id uint, patch models.CategoryPatch) (*models.Category, error) {
	if patch.Parent.Set {
		patch.Parent.ID = models.NormalizeID(patch.Parent.ID)
	}

	if err := s.checkPatch(id, patch); err != nil {
		return nil, failure(ctx, err, CategoryMessageLimit)
	}

	updated, err := s.remote.UpdateCategory(ctx, id, patch)
	if err != nil {
		return nil, failure(ctx, err, CategoryMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Get().Debugw("category updated", "id", id)

	if err := s.Refresh(ctx); err != nil {
		return updated, refreshFailure(ctx, err, CategoryMessageLimit)
	}
	return updated, nil
}

// Delete deletes a category and reloads the collection.
func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	if err := s.remote.DeleteCategory(ctx, id); err != nil {
		return failure(ctx, err, CategoryMessageLimit)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Get().Debugw("category deleted", "id", id)

	if err := s.Refresh(ctx); err != nil {
		return refreshFailure(ctx, err, CategoryMessageLimit)
	}
	return nil
}

func (s *CategoryStore) checkInput(in models.CategoryInput) error {
	fields := fieldsOf(validator.Struct(in))
	if in.Parent != nil {
		if msg := s.parentProblem(0, *in.Parent); msg != "" {
			fields = fields.Add("parent", msg)
		}
	}
	return asValidation(fields)
}

func (s *CategoryStore) checkPatch(id uint, patch models.CategoryPatch) error {
	fields := fieldsOf(validator.Struct(patch))
	if patch.Parent.Set && patch.Parent.ID != nil {
		if msg := s.parentProblem(id, *patch.Parent.ID); msg != "" {
			fields = fields.Add("parent", msg)
		}
	}
	return asValidation(fields)
}

// parentProblem walks the cached ancestors of parent and reports a parent
// that is unknown, the category itself, or one of its descendants. id is 0
// for a category that does not exist yet.
func (s *CategoryStore) parentProblem(id, parent uint) string {
	tree := s.Tree()
	if !tree.Has(parent) {
		return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", parent)
	}
	if id == 0 {
		return ""
	}
	if id == parent {
		return "A category cannot be its own parent."
	}
	if tree.WouldCycle(id, parent) {
		return "A category cannot be moved under one of its own subcategories."
	}
	return ""
}

func fieldsOf(err error) apperrors.FieldErrors {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return apperrors.FieldErrors{apperrors.Field(apperrors.NonFieldErrors, err.Error())}
}

func asValidation(fields apperrors.FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return apperrors.WithFields(apperrors.ErrValidation, fields...)
}
