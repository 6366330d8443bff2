package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/config"
)

// AdminPasswordHeader carries the shared secret on admin requests
const AdminPasswordHeader = "X-Admin-Password"

// RequireAdmin guards the admin route group with the shared-secret
// password. The comparison is constant-time; an empty configured password
// locks the group entirely rather than opening it.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		submitted := c.GetHeader(AdminPasswordHeader)

		valid := cfg.AdminPassword != "" &&
			subtle.ConstantTimeCompare([]byte(submitted), []byte(cfg.AdminPassword)) == 1

		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid admin password",
				},
			})
			return
		}

		c.Next()
	}
}
