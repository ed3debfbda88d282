package controllers

import (
	"context"
	"net/http"

	"EduPortal/internal/models"
	"EduPortal/internal/service/catalog"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CatalogService interface {
	ListCourses(ctx context.Context, filter catalog.Filter, limit, offset int) ([]models.CourseSummary, int, error)
	CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type CoursesHandler struct {
	catalog  CatalogService
	pageSize int
	log      logger.Log
}

func NewCoursesHandler(l logger.Log, catalogService CatalogService, pageSize int) *CoursesHandler {
	return &CoursesHandler{catalog: catalogService, pageSize: pageSize, log: l}
}

func (h *CoursesHandler) List(c *gin.Context) {
	limit, offset, page := pageParams(c, h.pageSize)
	filter := catalog.Filter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}

	courses, total, err := h.catalog.ListCourses(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, total, page, h.pageSize, courses))
}

func (h *CoursesHandler) Retrieve(c *gin.Context) {
	course, err := h.catalog.CourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CoursesHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
