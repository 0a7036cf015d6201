package testhelpers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/recipe-api/internal/database"
	"github.com/plateful/recipe-api/internal/models"
	"github.com/plateful/recipe-api/internal/service"
)

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-secret"

// TestPassword is the password every factory-created user gets.
const TestPassword = "testpass123"

// SetupTestDB opens an in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestUser creates an account with TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	auth := service.NewAuthService(db, TestJWTSecret)
	user, err := auth.Register(email, TestPassword, "Test User")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUserAndToken creates an account and logs it in.
func CreateTestUserAndToken(t *testing.T, db *gorm.DB, email string) (*models.User, string) {
	t.Helper()
	user := CreateTestUser(t, db, email)
	auth := service.NewAuthService(db, TestJWTSecret)
	token, err := auth.Login(email, TestPassword)
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	return user, token
}
