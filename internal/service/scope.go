package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned for rows that do not exist or are owned by a
	// different user. The two cases are indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a relationship field names an id
	// that does not exist.
	ErrInvalidReference = errors.New("referenced id does not exist")

	// ErrNegativeValue is returned when time_minutes or price is negative.
	ErrNegativeValue = errors.New("time_minutes and price must be non-negative")
)

// ownedBy restricts a query to rows owned by the given user. Every read and
// write query in this package applies it after all other filters, so no
// filter combination can widen the visible set.
func ownedBy(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
