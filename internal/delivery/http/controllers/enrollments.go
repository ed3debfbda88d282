package controllers

import (
	"context"
	"net/http"

	"EduPortal/internal/models"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, userID uuid.UUID, courseSlug string) (*models.Enrollment, error)
	EnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrollmentView, error)
}

type EnrollmentsHandler struct {
	enrollments EnrollmentService
	log         logger.Log
}

func NewEnrollmentsHandler(l logger.Log, enrollments EnrollmentService) *EnrollmentsHandler {
	return &EnrollmentsHandler{enrollments: enrollments, log: l}
}

func (h *EnrollmentsHandler) Enroll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	enrollment, err := h.enrollments.Enroll(c.Request.Context(), user.ID, c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          enrollment.ID,
		"enrolled_at": enrollment.EnrolledAt,
		"message":     "enrollment success",
	})
}

func (h *EnrollmentsHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	views, err := h.enrollments.EnrollmentsByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
