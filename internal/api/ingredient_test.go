package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateful/recipe-api/internal/models"
	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/testhelpers"
)

func TestListIngredientsRequiresAuth(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/ingredients/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListIngredients(t *testing.T) {
	engine, db := setupTestRouter(t)
	user, token := testhelpers.CreateTestUserAndToken(t, db, "user@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")

	attrs := service.NewAttributeService(db)
	ctx := context.Background()
	_, err := attrs.CreateIngredient(ctx, user.ID, "Kale")
	assert.NoError(t, err)
	_, err = attrs.CreateIngredient(ctx, user.ID, "Salt")
	assert.NoError(t, err)
	_, err = attrs.CreateIngredient(ctx, other.ID, "Vinegar")
	assert.NoError(t, err)

	w := doJSON(t, engine, http.MethodGet, "/ingredients/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var ingredients []models.Ingredient
	decodeBody(t, w, &ingredients)
	assert.Len(t, ingredients, 2)
	assert.Equal(t, "Salt", ingredients[0].Name)
	assert.Equal(t, "Kale", ingredients[1].Name)
}

func TestListIngredientsAssignedOnlyQuery(t *testing.T) {
	engine, db := setupTestRouter(t)
	user, token := testhelpers.CreateTestUserAndToken(t, db, "user@example.com")

	attrs := service.NewAttributeService(db)
	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	assigned, err := attrs.CreateIngredient(ctx, user.ID, "Apples")
	assert.NoError(t, err)
	_, err = attrs.CreateIngredient(ctx, user.ID, "Turkey")
	assert.NoError(t, err)
	_, err = recipes.Create(ctx, user.ID, service.RecipeInput{
		Title:         "Apple Crumble",
		TimeMinutes:   25,
		Price:         4.50,
		IngredientIDs: []uint{assigned.ID},
	})
	assert.NoError(t, err)

	w := doJSON(t, engine, http.MethodGet, "/ingredients/?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var ingredients []models.Ingredient
	decodeBody(t, w, &ingredients)
	assert.Len(t, ingredients, 1)
	assert.Equal(t, "Apples", ingredients[0].Name)
}

func TestCreateIngredient(t *testing.T) {
	engine, db := setupTestRouter(t)
	user, token := testhelpers.CreateTestUserAndToken(t, db, "user@example.com")

	w := doJSON(t, engine, http.MethodPost, "/ingredients/", token, map[string]interface{}{
		"name": "Cabbage",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var ingredient models.Ingredient
	decodeBody(t, w, &ingredient)
	assert.Equal(t, "Cabbage", ingredient.Name)

	var stored models.Ingredient
	assert.NoError(t, db.First(&stored, ingredient.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestCreateIngredientMissingName(t *testing.T) {
	engine, db := setupTestRouter(t)
	_, token := testhelpers.CreateTestUserAndToken(t, db, "user@example.com")

	w := doJSON(t, engine, http.MethodPost, "/ingredients/", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
