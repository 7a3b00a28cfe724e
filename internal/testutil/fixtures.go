package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendly/internal/models"
)

// TestPassword is the password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:  username,
		Email:     username + "@test.com",
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name under parentID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, parentID *uint) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, userID, fmt.Sprintf("Test Category %d", nextID()), parentID)
}

// CreateTestCategoryNamed creates a category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, userID uint, name string, parentID *uint) *models.Category {
	t.Helper()

	category := &models.Category{UserID: userID, Name: name, ParentID: parentID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSpending creates a spending of amount on date (YYYY-MM-DD).
func CreateTestSpending(t *testing.T, db *gorm.DB, userID uint, categoryID *uint, amount, date string) *models.Spending {
	t.Helper()

	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", date, err)
	}
	name := fmt.Sprintf("Test Spending %d", nextID())
	spending := &models.Spending{
		UserID:      userID,
		Name:        name,
		Description: name,
		Amount:      models.MustAmount(amount),
		Date:        d,
		CategoryID:  categoryID,
	}
	if err := db.Create(spending).Error; err != nil {
		t.Fatalf("failed to create test spending: %v", err)
	}
	return spending
}
