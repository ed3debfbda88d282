package controllers

import (
	"context"
	"net/http"

	"EduPortal/internal/models"
	"EduPortal/internal/service/glossary"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GlossaryService interface {
	ListTerms(ctx context.Context) ([]models.Term, error)
	SearchTerms(ctx context.Context, q string) ([]models.Term, error)
	TermByID(ctx context.Context, id uuid.UUID) (*models.Term, error)
	CreateTerm(ctx context.Context, in glossary.TermInput) (*models.Term, error)
	UpdateTerm(ctx context.Context, id uuid.UUID, in glossary.TermInput) (*models.Term, error)
	DeleteTerm(ctx context.Context, id uuid.UUID) error
}

type TermsHandler struct {
	glossary GlossaryService
	log      logger.Log
}

func NewTermsHandler(l logger.Log, g GlossaryService) *TermsHandler {
	return &TermsHandler{glossary: g, log: l}
}

func (h *TermsHandler) List(c *gin.Context) {
	terms, err := h.glossary.ListTerms(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *TermsHandler) Search(c *gin.Context) {
	terms, err := h.glossary.SearchTerms(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *TermsHandler) Retrieve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	term, err := h.glossary.TermByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, term)
}

type termRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"is_active"`
}

func (h *TermsHandler) Create(c *gin.Context) {
	var input termRequest
	if verr := bindJSON(c, &input); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	term, err := h.glossary.CreateTerm(c.Request.Context(), glossary.TermInput{
		Title:       input.Title,
		Description: input.Description,
		Order:       input.Order,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, term)
}

func (h *TermsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var input termRequest
	if verr := bindJSON(c, &input); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	term, err := h.glossary.UpdateTerm(c.Request.Context(), id, glossary.TermInput{
		Title:       input.Title,
		Description: input.Description,
		Order:       input.Order,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, term)
}

func (h *TermsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err := h.glossary.DeleteTerm(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
