package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// --- mock service ---

type mockCategoryService struct {
	listCategoriesFn func(userID uint) ([]models.Category, error)
	getCategoryFn    func(userID, categoryID uint) (*models.Category, error)
	createCategoryFn func(userID uint, in models.CategoryInput) (*models.Category, error)
	updateCategoryFn func(userID, categoryID uint, patch models.CategoryPatch) (*models.Category, error)
	deleteCategoryFn func(userID, categoryID uint) error
}

func (m *mockCategoryService) ListCategories(userID uint) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(userID)
	}
	return nil, nil
}

func (m *mockCategoryService) GetCategory(userID, categoryID uint) (*models.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(userID, categoryID)
	}
	return &models.Category{Base: models.Base{ID: categoryID}}, nil
}

func (m *mockCategoryService) CreateCategory(userID uint, in models.CategoryInput) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, in)
	}
	return &models.Category{Base: models.Base{ID: 1}, Name: in.Name, ParentID: in.Parent, UserID: userID}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID uint, patch models.CategoryPatch) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, patch)
	}
	return &models.Category{Base: models.Base{ID: categoryID}}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/transactions/categories", injectUserID(1))
	g.GET("/", handler.ListCategories)
	g.POST("/", handler.CreateCategory)
	g.GET("/:id/", handler.GetCategory)
	g.PATCH("/:id/", handler.UpdateCategory)
	g.DELETE("/:id/", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("returns a bare array with parent names", func(t *testing.T) {
		food := "Food"
		svc := &mockCategoryService{
			listCategoriesFn: func(userID uint) ([]models.Category, error) {
				if userID != 1 {
					t.Errorf("expected user 1, got %d", userID)
				}
				parent := uint(1)
				return []models.Category{
					{Base: models.Base{ID: 1}, Name: "Food", UserID: 1},
					{Base: models.Base{ID: 2}, Name: "Groceries", ParentID: &parent, ParentName: &food, UserID: 1},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/transactions/categories/", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		want := `[{"id":1,"name":"Food","parent":null,"parent_name":null,"user":1},` +
			`{"id":2,"name":"Groceries","parent":1,"parent_name":"Food","user":1}]`
		if got := rec.Body.String(); got != want {
			t.Errorf("unexpected body:\n got %s\nwant %s", got, want)
		}
	})

	t.Run("returns an empty array, not null", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "GET", "/transactions/categories/", "")

		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantParent *uint
	}{
		{"top level", `{"name":"Food"}`, nil, http.StatusCreated, nil},
		{"null parent", `{"name":"Food","parent":null}`, nil, http.StatusCreated, nil},
		{"sub category", `{"name":"Groceries","parent":1}`, nil, http.StatusCreated, uintPtr(1)},
		{
			"service rejects nesting",
			`{"name":"Deep","parent":2}`,
			apperrors.WithFields(apperrors.ErrValidation,
				apperrors.Field(apperrors.NonFieldErrors, "Cannot make a sub-category of a sub-category.")),
			http.StatusBadRequest,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.CategoryInput
			svc := &mockCategoryService{
				createCategoryFn: func(_ uint, in models.CategoryInput) (*models.Category, error) {
					got = in
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &models.Category{Base: models.Base{ID: 9}, Name: in.Name, ParentID: in.Parent}, nil
				},
			}
			r := setupCategoryRouter(NewCategoryHandler(svc))

			rec := doRequest(r, "POST", "/transactions/categories/", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.svcErr != nil {
				assertFieldError(t, parseJSON(t, rec), apperrors.NonFieldErrors, "Cannot make a sub-category of a sub-category.")
				return
			}
			if (got.Parent == nil) != (tt.wantParent == nil) || (got.Parent != nil && *got.Parent != *tt.wantParent) {
				t.Errorf("parent = %v, want %v", got.Parent, tt.wantParent)
			}
		})
	}
}

func TestCategoryHandler_GetCategory(t *testing.T) {
	t.Run("unknown category is 404", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryFn: func(uint, uint) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/transactions/categories/5/", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "CATEGORY_NOT_FOUND")
		if result["detail"] != "Not found." {
			t.Errorf("unexpected detail %v", result["detail"])
		}
	})

	t.Run("non numeric id is 404", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "GET", "/transactions/categories/abc/", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantName  *string
		wantPatch models.OptionalID
	}{
		{"rename only", `{"name":"Meals"}`, strPtr("Meals"), models.OptionalID{}},
		{"clear parent", `{"parent":null}`, nil, models.Clear()},
		{"move", `{"parent":4}`, nil, models.SetID(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.CategoryPatch
			svc := &mockCategoryService{
				updateCategoryFn: func(_, id uint, patch models.CategoryPatch) (*models.Category, error) {
					got = patch
					return &models.Category{Base: models.Base{ID: id}}, nil
				},
			}
			r := setupCategoryRouter(NewCategoryHandler(svc))

			rec := doRequest(r, "PATCH", "/transactions/categories/2/", tt.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if (got.Name == nil) != (tt.wantName == nil) || (got.Name != nil && *got.Name != *tt.wantName) {
				t.Errorf("name = %v, want %v", got.Name, tt.wantName)
			}
			if got.Parent.Set != tt.wantPatch.Set {
				t.Errorf("parent set = %v, want %v", got.Parent.Set, tt.wantPatch.Set)
			}
			if tt.wantPatch.ID != nil && (got.Parent.ID == nil || *got.Parent.ID != *tt.wantPatch.ID) {
				t.Errorf("parent id = %v, want %d", got.Parent.ID, *tt.wantPatch.ID)
			}
		})
	}
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		var deleted uint
		svc := &mockCategoryService{
			deleteCategoryFn: func(_, id uint) error {
				deleted = id
				return nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "DELETE", "/transactions/categories/3/", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deleted != 3 {
			t.Errorf("expected category 3 deleted, got %d", deleted)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(uint, uint) error { return apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "DELETE", "/transactions/categories/3/", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }
