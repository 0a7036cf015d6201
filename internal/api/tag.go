package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/service"
)

// TagHandler serves the tag endpoints.
type TagHandler struct {
	attributes *service.AttributeService
}

func NewTagHandler(attributes *service.AttributeService) *TagHandler {
	return &TagHandler{attributes: attributes}
}

type createAttributeRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /tags/ (optionally ?assigned_only=1)
func (h *TagHandler) List(c *gin.Context) {
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

	tags, err := h.attributes.ListTags(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, tags)
}

// Create handles POST /tags/
func (h *TagHandler) Create(c *gin.Context) {
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

	tag, err := h.attributes.CreateTag(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tag)
}
