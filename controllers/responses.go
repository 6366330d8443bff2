package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/services"
)

// errorBody builds the error envelope shared by every handler
func errorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// respondError maps a service error onto the HTTP response. Validation
// and not-found errors carry their message to the client; storage and
// other internal failures are logged and answered with a generic message
// so connection details never leak.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var notificationErr *services.NotificationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", validationErr.Message))
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", notFoundErr.Error()))
	case errors.As(err, &notificationErr):
		log.Printf("%v", notificationErr)
		c.JSON(http.StatusBadGateway, errorBody("NOTIFICATION_ERROR", "Failed to deliver message"))
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, errorBody("INTERNAL_ERROR", "Internal server error"))
	}
}
