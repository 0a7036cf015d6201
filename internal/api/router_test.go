package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/api"
	"github.com/plateful/recipe-api/internal/router"
	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/testhelpers"
)

// setupTestRouter wires the full route table against an in-memory database
// and a temp-dir image store.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	authService := service.NewAuthService(db, testhelpers.TestJWTSecret)
	attributeService := service.NewAttributeService(db)
	recipeService := service.NewRecipeService(db)
	imageService := service.NewImageService(service.NewLocalImageStore(t.TempDir()))

	engine := router.Setup(router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		User:       api.NewUserHandler(authService),
		Tag:        api.NewTagHandler(attributeService),
		Ingredient: api.NewIngredientHandler(attributeService),
		Recipe:     api.NewRecipeHandler(recipeService, imageService),
	}, authService, nil)
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
