package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/recipe-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestRegisterNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.Register("Test@Test.com", "testpass", "Test User")
	assert.NoError(t, err)
	assert.Equal(t, "test@test.com", user.Email)

	var stored models.User
	assert.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "test@test.com", stored.Email)
}

func TestRegisterPasswordNotStoredRaw(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)
	assert.NotEqual(t, "testpass", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterPasswordLength(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	_, err := auth.Register("short@example.com", "pass", "Test User")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// Exactly the minimum length is accepted.
	_, err = auth.Register("short@example.com", "passw", "Test User")
	assert.NoError(t, err)
}

func TestRegisterEmptyEmail(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	_, err := auth.Register("   ", "testpass", "Test User")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	_, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)

	// Same address with different casing is still a duplicate.
	_, err = auth.Register("User@Example.com", "testpass", "Other User")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateEmailSeededRow(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	// A row inserted outside Register still triggers the duplicate error;
	// the unique index, not a lookup, decides.
	seed := models.User{Email: "user@example.com", PasswordHash: "hash"}
	assert.NoError(t, db.Create(&seed).Error)

	_, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterSuperuser(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.RegisterSuperuser("admin@example.com", "testpass", "Admin")
	assert.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)

	var stored models.User
	assert.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsStaff)
	assert.True(t, stored.IsSuperuser)
}

func TestLoginIssuesValidToken(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)

	token, err := auth.Login("user@example.com", "testpass")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginFailures(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	_, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)

	_, err = auth.Login("user@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("user@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "testpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret.
	other := NewAuthService(db, "other-secret")
	user, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)
	_ = user
	token, err := auth.Login("user@example.com", "testpass")
	assert.NoError(t, err)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)
	oldHash := user.PasswordHash

	newPassword := "newpassword"
	updated, err := auth.UpdateUser(user.ID, nil, &newPassword)
	assert.NoError(t, err)
	assert.NotEqual(t, newPassword, updated.PasswordHash)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = auth.Login("user@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestUpdateUserPartial(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)

	name := "New Name"
	updated, err := auth.UpdateUser(user.ID, &name, nil)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "user@example.com", updated.Email)

	// The old password still works when no password was supplied.
	_, err = auth.Login("user@example.com", "testpass")
	assert.NoError(t, err)
}

func TestUpdateUserShortPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "secret")

	user, err := auth.Register("user@example.com", "testpass", "Test User")
	assert.NoError(t, err)

	short := "pw"
	_, err = auth.UpdateUser(user.ID, nil, &short)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
