package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthRateLimiterConfig(t *testing.T) {
	limiter := NewAuthRateLimiter(nil)
	assert.Equal(t, time.Minute, limiter.config.Window)
	assert.Equal(t, 20, limiter.config.Limit)
	assert.Equal(t, "rate_limit:auth", limiter.config.KeyPrefix)
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A client pointed at a closed port makes every check fail; the
	// request must still go through.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	limiter := NewAuthRateLimiter(client)

	router := gin.New()
	router.POST("/token/", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/token/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
