package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/recipe-api/internal/service"
)

// UserHandler serves the authenticated self-service endpoint. Responses
// expose email and name only; the password is write-only and the email is
// immutable after account creation.
type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me handles GET /me/
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, userResponse{Email: user.Email, Name: user.Name})
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UpdateMe handles PATCH /me/. Only supplied fields change.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.applyUpdate(c, userID, req.Name, req.Password)
}

type replaceUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Password *string `json:"password"`
}

// ReplaceMe handles PUT /me/. The name is required; the password changes
// only when supplied.
func (h *UserHandler) ReplaceMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req replaceUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.applyUpdate(c, userID, &req.Name, req.Password)
}

func (h *UserHandler) applyUpdate(c *gin.Context, userID uuid.UUID, name, password *string) {
	user, err := h.authService.UpdateUser(userID, name, password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, userResponse{Email: user.Email, Name: user.Name})
}
