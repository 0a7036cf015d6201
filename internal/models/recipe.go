package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-defined label attached to recipes.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
}

// Ingredient is a user-defined ingredient attached to recipes.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
}

// Recipe is the central entity. The Image field holds the storage path of
// the uploaded image (relative to the storage root), never a client value.
type Recipe struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Link        string       `gorm:"size:255" json:"link"`
	Image       string       `gorm:"size:255" json:"image"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"-"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"-"`
}
