package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Neelshah1810/GHXChange/internal/config"
)

func TestCORSMiddleware(t *testing.T) {
	t.Run("CORS disabled is a pass-through", func(t *testing.T) {
		cfg := &config.Config{
			Security: config.SecurityConfig{CORSEnabled: false},
		}

		router := setupTestRouter()
		router.Use(CORSMiddleware(cfg))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("CORS enabled sets headers for allowed origin", func(t *testing.T) {
		cfg := &config.Config{
			Security: config.SecurityConfig{
				CORSEnabled: true,
				CORSOrigins: []string{"http://allowed.example.com"},
			},
		}

		router := setupTestRouter()
		router.Use(CORSMiddleware(cfg))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://allowed.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://allowed.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight request for allowed origin", func(t *testing.T) {
		cfg := &config.Config{
			Security: config.SecurityConfig{
				CORSEnabled: true,
				CORSOrigins: []string{"http://allowed.example.com"},
			},
		}

		router := setupTestRouter()
		router.Use(CORSMiddleware(cfg))
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		req, _ := http.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "http://allowed.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}
