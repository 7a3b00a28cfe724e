package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
	"spendly/internal/validator"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the user's categories in creation order with their
// parent names resolved.
func (s *categoryService) ListCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Parent").
		Where("user_id = ?", userID).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range categories {
		categories[i].ResolveParentName()
	}
	return categories, nil
}

// GetCategory retrieves a category by ID for a specific user
func (s *categoryService) GetCategory(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Parent").
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	category.ResolveParentName()
	return &category, nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(userID uint, in models.CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Parent = models.NormalizeID(in.Parent)
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	parent, err := s.lookupParent(userID, in.Parent)
	if err != nil {
		return nil, err
	}
	if err := s.checkPlacement(userID, nil, in.Name, parent); err != nil {
		return nil, err
	}

	category := &models.Category{UserID: userID, Name: in.Name, ParentID: in.Parent}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetCategory(userID, category.ID)
}

// UpdateCategory applies a partial update. Only the fields present in the
// patch are changed.
func (s *categoryService) UpdateCategory(userID, categoryID uint, patch models.CategoryPatch) (*models.Category, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if err := validator.Struct(patch); err != nil {
		return nil, err
	}

	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	name := category.Name
	if patch.Name != nil {
		name = *patch.Name
	}
	parentID := category.ParentID
	if patch.Parent.Set {
		parentID = models.NormalizeID(patch.Parent.ID)
	}

	if parentID != nil && *parentID == category.ID {
		return nil, apperrors.WithFields(apperrors.ErrValidation,
			apperrors.Field("parent", "A category cannot be its own parent."),
		)
	}
	parent, err := s.lookupParent(userID, parentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPlacement(userID, category, name, parent); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = name
	}
	if patch.Parent.Set {
		updates["parent_id"] = parentID
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND user_id = ?", category.ID, userID).
			Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetCategory(userID, category.ID)
}

// DeleteCategory deletes a category. Its subcategories become top-level and
// its spendings become uncategorized.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", category.ID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Spending{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, category.ID).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// lookupParent resolves a parent reference among the user's own categories.
// Other users' categories are reported as missing.
func (s *categoryService) lookupParent(userID uint, parentID *uint) (*models.Category, error) {
	if parentID == nil {
		return nil, nil
	}
	var parent models.Category
	if err := s.db.Where("id = ? AND user_id = ?", *parentID, userID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithFields(apperrors.ErrValidation,
				apperrors.Field("parent", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(*parentID))),
			)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &parent, nil
}

// checkPlacement enforces the unique (name, parent) pair per user and the
// two-level limit. instance is nil on create.
func (s *categoryService) checkPlacement(userID uint, instance *models.Category, name string, parent *models.Category) error {
	q := s.db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name)
	if parent == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", parent.ID)
	}
	if instance != nil {
		q = q.Where("id <> ?", instance.ID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nonField("A category with this name already exists.")
	}

	if parent == nil {
		return nil
	}
	if parent.ParentID != nil {
		return nonField("Cannot make a sub-category of a sub-category.")
	}
	if instance != nil {
		var children int64
		if err := s.db.Model(&models.Category{}).Where("parent_id = ?", instance.ID).Count(&children).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if children > 0 {
			return nonField("A category with subcategories cannot be made a subcategory.")
		}
	}
	return nil
}

func nonField(msg string) error {
	return apperrors.WithFields(apperrors.ErrValidation, apperrors.Field(apperrors.NonFieldErrors, msg))
}
