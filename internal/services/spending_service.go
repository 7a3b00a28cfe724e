package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
	"spendly/internal/pagination"
	"spendly/internal/validator"
)

// spendingService handles spending-related business logic.
type spendingService struct {
	db *gorm.DB
}

// NewSpendingService creates a new SpendingServicer.
func NewSpendingService(db *gorm.DB) SpendingServicer {
	return &spendingService{db: db}
}

// ListSpendings returns the user's spendings, newest first, and the total
// count. A zero page request returns every spending.
func (s *spendingService) ListSpendings(userID uint, page pagination.PageRequest) ([]models.Spending, int64, error) {
	owned := func() *gorm.DB {
		return s.db.Model(&models.Spending{}).Where("user_id = ?", userID)
	}

	var totalItems int64
	if err := owned().Count(&totalItems).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	q := owned().Preload("Category").Order("date DESC").Order("id DESC")
	if page.Requested() {
		page.Defaults()
		q = q.Scopes(pagination.Paginate(page))
	}

	var spendings []models.Spending
	if err := q.Find(&spendings).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range spendings {
		spendings[i].ResolveCategoryName()
	}
	return spendings, totalItems, nil
}

// GetSpending retrieves a spending by ID for a specific user
func (s *spendingService) GetSpending(userID, spendingID uint) (*models.Spending, error) {
	var spending models.Spending
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", spendingID, userID).
		First(&spending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSpendingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	spending.ResolveCategoryName()
	return &spending, nil
}

// CreateSpending records a new spending. A blank description defaults to the
// name.
func (s *spendingService) CreateSpending(userID uint, in models.SpendingInput) (*models.Spending, error) {
	return s.save(userID, &models.Spending{UserID: userID}, in.Patch())
}

// UpdateSpending applies a partial update to an existing spending.
func (s *spendingService) UpdateSpending(userID, spendingID uint, patch models.SpendingPatch) (*models.Spending, error) {
	existing, err := s.GetSpending(userID, spendingID)
	if err != nil {
		return nil, err
	}
	existing.Category = nil
	return s.save(userID, existing, patch)
}

// DeleteSpending deletes a spending
func (s *spendingService) DeleteSpending(userID, spendingID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", spendingID, userID).Delete(&models.Spending{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSpendingNotFound
	}
	return nil
}

func (s *spendingService) save(userID uint, spending *models.Spending, patch models.SpendingPatch) (*models.Spending, error) {
	trimPtr(patch.Name)
	trimPtr(patch.Description)
	if err := validator.Struct(patch); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		spending.Name = *patch.Name
	}
	if patch.Description != nil {
		spending.Description = *patch.Description
	}
	if patch.Amount != nil {
		amount, err := models.NewAmount(strings.TrimSpace(string(*patch.Amount)))
		if err != nil {
			return nil, apperrors.WithFields(apperrors.ErrValidation, apperrors.Field("amount", "A valid number is required."))
		}
		spending.Amount = amount
	}
	if patch.Date != nil {
		date, err := models.ParseDate(*patch.Date)
		if err != nil {
			return nil, apperrors.WithFields(apperrors.ErrValidation,
				apperrors.Field("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."),
			)
		}
		spending.Date = date
	}
	if patch.Category.Set {
		categoryID := models.NormalizeID(patch.Category.ID)
		if err := s.checkCategory(userID, categoryID); err != nil {
			return nil, err
		}
		spending.CategoryID = categoryID
	}

	if spending.Description == "" {
		spending.Description = spending.Name
	}

	if err := s.db.Save(spending).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetSpending(userID, spending.ID)
}

// checkCategory verifies that categoryID, when set, names one of the user's
// categories.
func (s *spendingService) checkCategory(userID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var category models.Category
	if err := s.db.First(&category, *categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithFields(apperrors.ErrValidation,
				apperrors.Field("category", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(*categoryID))),
			)
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != userID {
		return apperrors.WithFields(apperrors.ErrValidation,
			apperrors.Field("category", "The selected category does not belong to the authenticated user."),
		)
	}
	return nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
