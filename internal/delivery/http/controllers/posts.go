package controllers

import (
	"context"
	"net/http"

	"EduPortal/internal/models"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
)

type BlogService interface {
	ListPosts(ctx context.Context, limit, offset int) ([]models.PostView, int, error)
	PostBySlug(ctx context.Context, slug string) (*models.PostView, error)
}

type PostsHandler struct {
	blog     BlogService
	pageSize int
	log      logger.Log
}

func NewPostsHandler(l logger.Log, blogService BlogService, pageSize int) *PostsHandler {
	return &PostsHandler{blog: blogService, pageSize: pageSize, log: l}
}

func (h *PostsHandler) List(c *gin.Context) {
	limit, offset, page := pageParams(c, h.pageSize)
	posts, total, err := h.blog.ListPosts(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, total, page, h.pageSize, posts))
}

func (h *PostsHandler) Retrieve(c *gin.Context) {
	post, err := h.blog.PostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
