package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/service"
)

// IngredientHandler serves the ingredient endpoints.
type IngredientHandler struct {
	attributes *service.AttributeService
}

func NewIngredientHandler(attributes *service.AttributeService) *IngredientHandler {
	return &IngredientHandler{attributes: attributes}
}

// List handles GET /ingredients/ (optionally ?assigned_only=1)
func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly, err := parseBoolFlag(c.Query("assigned_only"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_only must be an integer"})
		return
	}

	ingredients, err := h.attributes.ListIngredients(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// Create handles POST /ingredients/
func (h *IngredientHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req createAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ingredient, err := h.attributes.CreateIngredient(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}
