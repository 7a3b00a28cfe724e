// Package testserver runs the spendly API in-process on top of a private
// in-memory database.
package testserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/gorm"

	"spendly/internal/config"
	"spendly/internal/middleware"
	"spendly/internal/models"
	"spendly/internal/server"
	"spendly/internal/testutil"
	"spendly/internal/validator"
)

// Server is a running API server.
type Server struct {
	*httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// New starts a server and registers its shutdown with t.Cleanup.
func New(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Env:              "test",
		ReceiptDir:       t.TempDir(),
		Assistant:        "summary",
		JWTSecret:        "testserver-secret",
		JWTExpirationDur: time.Hour,
	}
	config.Set(cfg)
	validator.Register()

	db := testutil.SetupTestDB(t)
	if sqlDB, err := db.DB(); err == nil {
		// Shared-cache memory databases lock whole tables.
		sqlDB.SetMaxOpenConns(1)
	}

	srv := httptest.NewServer(server.New(cfg, server.NewServices(db, cfg)))
	t.Cleanup(func() {
		srv.Close()
		testutil.TeardownTestDB(t, db)
	})

	return &Server{Server: srv, DB: db, Config: cfg}
}

// APIURL returns the base URL clients are configured with.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// Token creates a user and returns a token authenticating as them.
func (s *Server) Token(t *testing.T) (*models.User, string) {
	t.Helper()
	user := testutil.CreateTestUser(t, s.DB)
	token, err := middleware.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}
