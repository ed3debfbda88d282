package controllers

import (
	"errors"
	"net/http"

	"EduPortal/internal/app_errors"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError translates domain errors into the API's error taxonomy:
// validation failures answer 400 with per-field messages, auth failures
// answer a generic 401, invisible or absent records answer 404, and
// anything unexpected answers 500 after being logged.
func respondError(c *gin.Context, log logger.Log, err error) {
	var verr *app_errors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}

	switch {
	case errors.Is(err, app_errors.ErrAlreadyEnrolled):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"course": []string{err.Error()}}})
	case errors.Is(err, app_errors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, app_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrUserNotFound),
		errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrCategoryNotFound),
		errors.Is(err, app_errors.ErrTermNotFound),
		errors.Is(err, app_errors.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, app_errors.ErrTokenNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to log out"})
	case errors.Is(err, app_errors.ErrNotImage):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"avatar": []string{err.Error()}}})
	default:
		log.ErrorErr("unhandled request error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
