// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"spendly/internal/database"
)

// SetupTestDB creates a private in-memory SQLite database with the embedded
// migrations applied.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config := database.SQLiteConfig(fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID()))

	// Open first: the shared in-memory database lives as long as a
	// connection to it is open.
	db, err := database.Open(config, gormlogger.Silent)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(0)

	if err := database.Migrate(config); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
