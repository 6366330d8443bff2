package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/config"
)

// CheckPasswordRequest represents the request body for the admin password
// check
type CheckPasswordRequest struct {
	Password string `json:"password"`
}

// AuthController exposes the admin shared-secret check used by the admin
// login screen
type AuthController struct {
	cfg *config.Config
}

// NewAuthController creates an auth controller
func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

// Check handles POST /api/v1/auth/check - validates the submitted admin
// password. An empty configured password never validates. Always answers
// 200; the verdict is in the body.
func (ct *AuthController) Check(c *gin.Context) {
	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "Invalid request data"))
		return
	}

	valid := ct.cfg.AdminPassword != "" &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(ct.cfg.AdminPassword)) == 1

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   valid,
	})
}
