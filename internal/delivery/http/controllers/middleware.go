package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"EduPortal/internal/models"
	"EduPortal/internal/policy"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const ClientCtx = "client"

// AuthMiddleware resolves an opaque "Authorization: Bearer <key>" header
// to its user. Every failure mode answers the same generic 401 so the
// header cannot be used to probe which keys exist.
func (h *AuthHandler) AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var key string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		key = parts[1]
	}
	if key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.AuthService.UserByToken(c.Request.Context(), key)
	if err != nil {
		h.log.Info("rejected bearer token", "client_ip", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(ClientCtx, user)
	c.Next()
}

// OptionalAuthMiddleware resolves a bearer token when one is present but
// lets anonymous requests through. Handlers behind it decide what an
// absent user means.
func (h *AuthHandler) OptionalAuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 && parts[1] != "" {
		if user, err := h.AuthService.UserByToken(c.Request.Context(), parts[1]); err == nil {
			c.Set(ClientCtx, user)
		}
	}
	c.Next()
}

// currentUser returns the user placed in the context by AuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(ClientCtx)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

func callerFrom(c *gin.Context) policy.Caller {
	user, ok := currentUser(c)
	if !ok {
		return policy.Anonymous()
	}
	return policy.Authenticated(user.ID)
}

func LoggingMiddleware(logger logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery
		if rawQuery != "" {
			path = fmt.Sprintf("%s?%s", path, rawQuery)
		}
		status := c.Writer.Status()

		msg := fmt.Sprintf("%s %s", method, path)

		logger.Info(msg,
			"status", status,
			"latency", latency,
			"client_ip", clientIP,
		)

		for _, ginErr := range c.Errors {
			logger.ErrorErr("HTTP request error", ginErr.Err,
				"status", status,
				"method", method,
				"path", path,
			)
		}
	}
}
