package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/models"
)

// AttributeService handles tags and ingredients. The two share the same
// contract: list ordered by name descending, optionally restricted to rows
// assigned to at least one recipe, always scoped to the owner last.
type AttributeService struct {
	db *gorm.DB
}

func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

// ListTags returns the requester's tags. With assignedOnly the set is
// restricted to tags referenced by at least one recipe; the assignment
// check looks at any recipe regardless of owner, while the tag rows
// themselves stay owner-scoped.
func (s *AttributeService) ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	query := s.db.WithContext(ctx).Model(&models.Tag{})
	if assignedOnly {
		query = query.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id")
	}

	var tags []models.Tag
	err := query.
		Scopes(ownedBy(userID)).
		Distinct("tags.*").
		Order("tags.name DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag owned by the requester. The owner is never taken
// from the payload.
func (s *AttributeService) CreateTag(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListIngredients mirrors ListTags for ingredients.
func (s *AttributeService) ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if assignedOnly {
		query = query.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id")
	}

	var ingredients []models.Ingredient
	err := query.
		Scopes(ownedBy(userID)).
		Distinct("ingredients.*").
		Order("ingredients.name DESC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient creates an ingredient owned by the requester.
func (s *AttributeService) CreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
