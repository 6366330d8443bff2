package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/config"
	"github.com/stretchr/testify/assert"
)

func setupGuardedRouter(adminPassword string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	admin := router.Group("/admin", RequireAdmin(&config.Config{AdminPassword: adminPassword}))
	admin.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		configured     string
		header         string
		expectedStatus int
	}{
		{"correct secret", "s3cret", "s3cret", http.StatusOK},
		{"wrong secret", "s3cret", "guess", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"empty configured password locks the group", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupGuardedRouter(tt.configured)

			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tt.header != "" {
				req.Header.Set(AdminPasswordHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
