package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateful/recipe-api/internal/models"
)

func TestSerializeRecipeListShape(t *testing.T) {
	recipe := &models.Recipe{
		ID:          1,
		Title:       "Curry",
		TimeMinutes: 30,
		Price:       7.50,
		Link:        "https://example.com/curry",
		Tags:        []models.Tag{{ID: 3, Name: "Dinner"}},
		Ingredients: []models.Ingredient{{ID: 8, Name: "Rice"}},
	}

	out := serializeRecipe(recipe, RecipeShapeList)
	resp, ok := out.(recipeResponse)
	assert.True(t, ok)
	assert.Equal(t, []uint{3}, resp.Tags)
	assert.Equal(t, []uint{8}, resp.Ingredients)
}

func TestSerializeRecipeListShapeEmptyAssociations(t *testing.T) {
	out := serializeRecipe(&models.Recipe{ID: 1, Title: "Plain"}, RecipeShapeList)
	resp, ok := out.(recipeResponse)
	assert.True(t, ok)

	// Empty lists marshal as [], not null.
	assert.NotNil(t, resp.Tags)
	assert.Empty(t, resp.Tags)
	assert.NotNil(t, resp.Ingredients)
}

func TestSerializeRecipeDetailShape(t *testing.T) {
	recipe := &models.Recipe{
		ID:    1,
		Title: "Curry",
		Tags:  []models.Tag{{ID: 3, Name: "Dinner"}},
	}

	out := serializeRecipe(recipe, RecipeShapeDetail)
	resp, ok := out.(recipeDetailResponse)
	assert.True(t, ok)
	assert.Equal(t, "Dinner", resp.Tags[0].Name)
	assert.NotNil(t, resp.Ingredients)
	assert.Empty(t, resp.Ingredients)
}

func TestSerializeRecipeImageShape(t *testing.T) {
	recipe := &models.Recipe{
		ID:    1,
		Title: "Curry",
		Image: "uploads/recipe/abc.png",
	}

	out := serializeRecipe(recipe, RecipeShapeImage)
	resp, ok := out.(recipeImageResponse)
	assert.True(t, ok)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "uploads/recipe/abc.png", resp.Image)
}
