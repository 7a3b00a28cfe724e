package store

import (
	"context"
	"errors"
	"sync"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// fakeRemote is an in-memory remote store. Each failNext* field, when set,
// is returned once by the matching call.
type fakeRemote struct {
	mu         sync.Mutex
	nextID     uint
	categories []models.Category
	spendings  []models.Spending

	failNextList     error
	failNextMutation error
	listCalls        int
	mutationCalls    int

	// onList runs before a list call returns, e.g. to cancel a context.
	onList func()
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextID: 1}
}

func (f *fakeRemote) takeListErr() error {
	f.listCalls++
	err := f.failNextList
	f.failNextList = nil
	if f.onList != nil {
		f.onList()
	}
	return err
}

func (f *fakeRemote) takeMutationErr() error {
	f.mutationCalls++
	err := f.failNextMutation
	f.failNextMutation = nil
	return err
}

func (f *fakeRemote) categoryName(id *uint) *string {
	if id == nil {
		return nil
	}
	for _, c := range f.categories {
		if c.ID == *id {
			name := c.Name
			return &name
		}
	}
	return nil
}

func (f *fakeRemote) ListCategories(context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeListErr(); err != nil {
		return nil, err
	}
	out := make([]models.Category, len(f.categories))
	for i, c := range f.categories {
		c.ParentName = f.categoryName(c.ParentID)
		out[i] = c
	}
	return out, nil
}

func (f *fakeRemote) CreateCategory(_ context.Context, in models.CategoryInput) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeMutationErr(); err != nil {
		return nil, err
	}
	c := models.Category{Base: models.Base{ID: f.nextID}, Name: in.Name, ParentID: in.Parent, UserID: 1}
	f.nextID++
	f.categories = append(f.categories, c)
	c.ParentName = f.categoryName(c.ParentID)
	return &c, nil
}

func (f *fakeRemote) UpdateCategory(_ context.Context, id uint, patch models.CategoryPatch) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeMutationErr(); err != nil {
		return nil, err
	}
	for i := range f.categories {
		if f.categories[i].ID != id {
			continue
		}
		if patch.Name != nil {
			f.categories[i].Name = *patch.Name
		}
		if patch.Parent.Set {
			f.categories[i].ParentID = patch.Parent.ID
		}
		c := f.categories[i]
		c.ParentName = f.categoryName(c.ParentID)
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRemote) DeleteCategory(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeMutationErr(); err != nil {
		return err
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeRemote) ListSpendings(context.Context) ([]models.Spending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeListErr(); err != nil {
		return nil, err
	}
	out := make([]models.Spending, len(f.spendings))
	for i, s := range f.spendings {
		s.CategoryName = f.categoryName(s.CategoryID)
		out[i] = s
	}
	return out, nil
}

func (f *fakeRemote) toSpending(id uint, in models.SpendingInput) (models.Spending, error) {
	amount, err := models.NewAmount(string(in.Amount))
	if err != nil {
		return models.Spending{}, err
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return models.Spending{}, err
	}
	return models.Spending{
		Base:        models.Base{ID: id},
		Name:        in.Name,
		Description: in.Description,
		Amount:      amount,
		Date:        date,
		CategoryID:  in.Category,
		UserID:      1,
	}, nil
}

func (f *fakeRemote) CreateSpending(_ context.Context, in models.SpendingInput) (*models.Spending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeMutationErr(); err != nil {
		return nil, err
	}
	s, err := f.toSpending(f.nextID, in)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, err)
	}
	f.nextID++
	f.spendings = append(f.spendings, s)
	return &s, nil
}

func (f *fakeRemote) UpdateSpending(_ context.Context, id uint, in models.SpendingInput) (*models.Spending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeMutationErr(); err != nil {
		return nil, err
	}
	for i := range f.spendings {
		if f.spendings[i].ID != id {
			continue
		}
		s, err := f.toSpending(id, in)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidation, err)
		}
		f.spendings[i] = s
		return &s, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRemote) DeleteSpending(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeMutationErr(); err != nil {
		return err
	}
	for i := range f.spendings {
		if f.spendings[i].ID == id {
			f.spendings = append(f.spendings[:i], f.spendings[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

var (
	_ CategorySyncer = (*fakeRemote)(nil)
	_ SpendingSyncer = (*fakeRemote)(nil)

	errNetwork = apperrors.Wrap(apperrors.ErrTransport, errors.New("connection refused"))
)
