package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/config"
	"github.com/plateful/recipe-api/internal/api"
	"github.com/plateful/recipe-api/internal/database"
	"github.com/plateful/recipe-api/internal/middleware"
	"github.com/plateful/recipe-api/internal/router"
	"github.com/plateful/recipe-api/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires the database, services, handlers and routes.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// Rate limiting is optional; without redis the auth endpoints are
	// simply unthrottled.
	var limiter *middleware.RateLimiter
	if cfg.RedisHost != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: rate limiting disabled: %v", err)
		} else {
			limiter = middleware.NewAuthRateLimiter(redisClient)
		}
	}

	store, err := newImageStore(cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	attributeService := service.NewAttributeService(db)
	recipeService := service.NewRecipeService(db)
	imageService := service.NewImageService(store)

	engine := router.Setup(router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		User:       api.NewUserHandler(authService),
		Tag:        api.NewTagHandler(attributeService),
		Ingredient: api.NewIngredientHandler(attributeService),
		Recipe:     api.NewRecipeHandler(recipeService, imageService),
	}, authService, limiter)

	return &Server{cfg: cfg, engine: engine, db: db}, nil
}

func newImageStore(cfg *config.Config) (service.ImageStore, error) {
	if cfg.StorageBackend == config.StorageS3 {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return service.NewS3ImageStore(s3Config), nil
	}
	return service.NewLocalImageStore(cfg.MediaRoot), nil
}

// Start starts the server
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort),
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
