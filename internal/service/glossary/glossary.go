package glossary

import (
	"context"
	"strings"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"
	"EduPortal/pkg/logger"

	"github.com/google/uuid"
)

type termRepo interface {
	ListActive(ctx context.Context) ([]models.Term, error)
	SearchActive(ctx context.Context, q string) ([]models.Term, error)
	ActiveByID(ctx context.Context, id uuid.UUID) (*models.Term, error)
	CreateTerm(ctx context.Context, term models.Term) (*models.Term, error)
	UpdateTerm(ctx context.Context, term models.Term) (*models.Term, error)
	DeleteTerm(ctx context.Context, id uuid.UUID) error
}

type GlossaryService struct {
	log   logger.Log
	terms termRepo
}

func NewGlossaryService(log logger.Log, terms termRepo) *GlossaryService {
	return &GlossaryService{log: log, terms: terms}
}

func (s *GlossaryService) ListTerms(ctx context.Context) ([]models.Term, error) {
	return s.terms.ListActive(ctx)
}

// SearchTerms matches q as a case-insensitive substring of title or
// description. An empty query behaves like a plain listing.
func (s *GlossaryService) SearchTerms(ctx context.Context, q string) ([]models.Term, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.terms.ListActive(ctx)
	}
	return s.terms.SearchActive(ctx, q)
}

func (s *GlossaryService) TermByID(ctx context.Context, id uuid.UUID) (*models.Term, error) {
	return s.terms.ActiveByID(ctx, id)
}

type TermInput struct {
	Title       string
	Description string
	Order       int
	IsActive    *bool
}

func (in TermInput) validate() *app_errors.ValidationError {
	verr := &app_errors.ValidationError{}
	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "This field is required.")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("description", "This field is required.")
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func (s *GlossaryService) CreateTerm(ctx context.Context, in TermInput) (*models.Term, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.terms.CreateTerm(ctx, models.Term{
		Title:       in.Title,
		Description: in.Description,
		Order:       in.Order,
		IsActive:    active,
	})
}

func (s *GlossaryService) UpdateTerm(ctx context.Context, id uuid.UUID, in TermInput) (*models.Term, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}
	current, err := s.terms.ActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active := current.IsActive
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.terms.UpdateTerm(ctx, models.Term{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Order:       in.Order,
		IsActive:    active,
	})
}

func (s *GlossaryService) DeleteTerm(ctx context.Context, id uuid.UUID) error {
	return s.terms.DeleteTerm(ctx, id)
}
