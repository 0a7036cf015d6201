package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/recipe-api/internal/models"
)

// RecipeService handles recipe CRUD. Every operation takes the requesting
// user explicitly and applies the owner filter after all other predicates.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilter narrows a listing. Ids within one field are a union; recipes
// must match both fields when both are set.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeInput is the writable field set of a recipe. The owner is not part
// of it.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeUpdate carries an update; nil fields are left untouched. A full
// update sets every field, so omitted relationship lists arrive as empty
// (not nil) and clear the associations.
type RecipeUpdate struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// List returns the requester's recipes ordered by title descending.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Tags").
		Preload("Ingredients")

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	err := query.
		Scopes(ownedBy(userID)).
		Distinct("recipes.*").
		Order("recipes.title DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns one of the requester's recipes with tags and ingredients
// loaded. Rows owned by other users report ErrNotFound.
func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Scopes(ownedBy(userID)).
		First(&recipe, "recipes.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create stores a new recipe owned by the requester.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	if input.TimeMinutes < 0 || input.Price < 0 {
		return nil, ErrNegativeValue
	}
	tags, err := s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		UserID:      userID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	if err := s.replaceAssociations(ctx, &recipe, tags, ingredients); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, recipe.ID)
}

// Update applies an update to one of the requester's recipes.
func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, id uint, update RecipeUpdate) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if update.TimeMinutes != nil && *update.TimeMinutes < 0 {
		return nil, ErrNegativeValue
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, ErrNegativeValue
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.TimeMinutes != nil {
		fields["time_minutes"] = *update.TimeMinutes
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.Link != nil {
		fields["link"] = *update.Link
	}
	if len(fields) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Recipe{ID: recipe.ID}).Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}

	if update.TagIDs != nil {
		tags, err := s.resolveTags(ctx, *update.TagIDs)
		if err != nil {
			return nil, err
		}
		assoc := s.db.WithContext(ctx).Model(recipe).Association("Tags")
		if len(tags) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(&tags)
		}
		if err != nil {
			return nil, err
		}
	}
	if update.IngredientIDs != nil {
		ingredients, err := s.resolveIngredients(ctx, *update.IngredientIDs)
		if err != nil {
			return nil, err
		}
		assoc := s.db.WithContext(ctx).Model(recipe).Association("Ingredients")
		if len(ingredients) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(&ingredients)
		}
		if err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, userID, id)
}

// Delete removes one of the requester's recipes along with its association
// rows. The stored image path is returned so the caller can discard the
// file; file removal is a best-effort side effect, not part of the delete.
func (s *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id uint) (string, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Select(clause.Associations).Delete(recipe).Error; err != nil {
		return "", err
	}
	return recipe.Image, nil
}

// SetImage stores a new image path on a recipe and returns the previous
// one.
func (s *RecipeService) SetImage(ctx context.Context, userID uuid.UUID, id uint, path string) (string, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	old := recipe.Image
	err = s.db.WithContext(ctx).Model(&models.Recipe{ID: recipe.ID}).Update("image", path).Error
	if err != nil {
		return "", err
	}
	return old, nil
}

func (s *RecipeService) replaceAssociations(ctx context.Context, recipe *models.Recipe, tags []models.Tag, ingredients []models.Ingredient) error {
	if len(tags) > 0 {
		err := s.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(&tags)
		if err != nil {
			return err
		}
	}
	if len(ingredients) > 0 {
		err := s.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(&ingredients)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Find(&tags, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrInvalidReference
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Find(&ingredients, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, ErrInvalidReference
	}
	return ingredients, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
