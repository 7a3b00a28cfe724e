package services

import (
	"context"
	"io"

	"spendly/internal/models"
	"spendly/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(reg models.Registration) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(userID uint) ([]models.Category, error)
	GetCategory(userID, categoryID uint) (*models.Category, error)
	CreateCategory(userID uint, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// SpendingServicer defines the contract for spending-related business logic.
type SpendingServicer interface {
	ListSpendings(userID uint, page pagination.PageRequest) ([]models.Spending, int64, error)
	GetSpending(userID, spendingID uint) (*models.Spending, error)
	CreateSpending(userID uint, in models.SpendingInput) (*models.Spending, error)
	UpdateSpending(userID, spendingID uint, patch models.SpendingPatch) (*models.Spending, error)
	DeleteSpending(userID, spendingID uint) error
}

// ReceiptServicer defines the contract for storing uploaded receipts.
type ReceiptServicer interface {
	SaveReceipt(userID uint, filename string, image io.Reader) (*models.Receipt, error)
}

// Assistant answers free-form questions about a user's spendings.
type Assistant interface {
	Answer(ctx context.Context, userID uint, prompt string) (string, error)
}
