package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/api"
	"github.com/plateful/recipe-api/internal/middleware"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth       *api.AuthHandler
	User       *api.UserHandler
	Tag        *api.TagHandler
	Ingredient *api.IngredientHandler
	Recipe     *api.RecipeHandler
}

// Setup configures the application routes
func Setup(h Handlers, validator middleware.TokenValidator, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public account routes, rate limited when redis is available
	public := router.Group("")
	if limiter != nil {
		public.Use(limiter.RateLimitMiddleware())
	}
	{
		public.POST("/create/", h.Auth.CreateUser)
		public.POST("/token/", h.Auth.CreateToken)
	}

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		protected.GET("/me/", h.User.Me)
		protected.PUT("/me/", h.User.ReplaceMe)
		protected.PATCH("/me/", h.User.UpdateMe)

		protected.GET("/tags/", h.Tag.List)
		protected.POST("/tags/", h.Tag.Create)

		protected.GET("/ingredients/", h.Ingredient.List)
		protected.POST("/ingredients/", h.Ingredient.Create)

		protected.GET("/recipes/", h.Recipe.List)
		protected.POST("/recipes/", h.Recipe.Create)
		protected.GET("/recipes/:id/", h.Recipe.Get)
		protected.PUT("/recipes/:id/", h.Recipe.Update)
		protected.PATCH("/recipes/:id/", h.Recipe.Patch)
		protected.DELETE("/recipes/:id/", h.Recipe.Delete)
		protected.POST("/recipes/:id/upload-image/", h.Recipe.UploadImage)
	}

	return router
}
