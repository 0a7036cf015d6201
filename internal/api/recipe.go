package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/service"
)

// RecipeHandler serves the recipe endpoints.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
}

func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

type recipeRequest struct {
	Title       string  `json:"title" binding:"required"`
	TimeMinutes int     `json:"time_minutes" binding:"gte=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type recipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// List handles GET /recipes/ with optional ?tags= and ?ingredients=
// comma-separated id lists.
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tags must be a comma-separated list of ids"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients must be a comma-separated list of ids"})
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), userID, service.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	out := make([]interface{}, 0, len(recipes))
	for i := range recipes {
		out = append(out, serializeRecipe(&recipes[i], RecipeShapeList))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /recipes/{id}/ and returns the nested detail shape.
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeRecipe(recipe, RecipeShapeDetail))
}

// Create handles POST /recipes/
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, service.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializeRecipe(recipe, RecipeShapeList))
}

// Update handles PUT /recipes/{id}/. Full update: every writable field is
// replaced, and relationship lists omitted from the payload clear the
// associations.
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tagIDs := req.Tags
	if tagIDs == nil {
		tagIDs = []uint{}
	}
	ingredientIDs := req.Ingredients
	if ingredientIDs == nil {
		ingredientIDs = []uint{}
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, service.RecipeUpdate{
		Title:         &req.Title,
		TimeMinutes:   &req.TimeMinutes,
		Price:         &req.Price,
		Link:          &req.Link,
		TagIDs:        &tagIDs,
		IngredientIDs: &ingredientIDs,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeRecipe(recipe, RecipeShapeList))
}

// Patch handles PATCH /recipes/{id}/. Partial update: omitted fields,
// including relationship lists, are left untouched.
func (h *RecipeHandler) Patch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req recipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, service.RecipeUpdate{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeRecipe(recipe, RecipeShapeList))
}

// Delete handles DELETE /recipes/{id}/. The stored image file is discarded
// best-effort after the row is gone.
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	imagePath, err := h.recipes.Delete(c.Request.Context(), userID, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.images.Remove(c.Request.Context(), imagePath)

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /recipes/{id}/upload-image/. The payload is a
// multipart form with an "image" file field.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	// Ownership check happens before the file is touched.
	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := h.images.SaveRecipeImage(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	oldPath, err := h.recipes.SetImage(c.Request.Context(), userID, id, path)
	if err != nil {
		h.images.Remove(c.Request.Context(), path)
		h.renderError(c, err)
		return
	}
	h.images.Remove(c.Request.Context(), oldPath)

	recipe.Image = path
	c.JSON(http.StatusOK, serializeRecipe(recipe, RecipeShapeImage))
}

// recipeID parses the {id} path segment. A non-numeric id is a lookup miss,
// not a validation failure.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNegativeValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
