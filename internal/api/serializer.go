package api

import (
	"github.com/plateful/recipe-api/internal/models"
)

// RecipeShape selects the wire representation of a recipe. The shape is
// chosen per operation, not per resource: listings and writes exchange tag
// and ingredient ids, the detail view nests the full attribute objects, and
// the image operation exposes only the id and image path.
type RecipeShape int

const (
	RecipeShapeList RecipeShape = iota
	RecipeShapeDetail
	RecipeShapeImage
)

type recipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type recipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

type recipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func serializeRecipe(r *models.Recipe, shape RecipeShape) interface{} {
	switch shape {
	case RecipeShapeDetail:
		tags := r.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		ingredients := r.Ingredients
		if ingredients == nil {
			ingredients = []models.Ingredient{}
		}
		return recipeDetailResponse{
			ID:          r.ID,
			Title:       r.Title,
			TimeMinutes: r.TimeMinutes,
			Price:       r.Price,
			Link:        r.Link,
			Tags:        tags,
			Ingredients: ingredients,
		}
	case RecipeShapeImage:
		return recipeImageResponse{ID: r.ID, Image: r.Image}
	default:
		tagIDs := make([]uint, 0, len(r.Tags))
		for _, t := range r.Tags {
			tagIDs = append(tagIDs, t.ID)
		}
		ingredientIDs := make([]uint, 0, len(r.Ingredients))
		for _, i := range r.Ingredients {
			ingredientIDs = append(ingredientIDs, i.ID)
		}
		return recipeResponse{
			ID:          r.ID,
			Title:       r.Title,
			TimeMinutes: r.TimeMinutes,
			Price:       r.Price,
			Link:        r.Link,
			Tags:        tagIDs,
			Ingredients: ingredientIDs,
		}
	}
}
