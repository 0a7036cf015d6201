package database

import (
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/models"
)

// Migrate applies the full schema, including the recipe_tags and
// recipe_ingredients association tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
