package catalog

import (
	"context"

	"EduPortal/internal/models"
	"EduPortal/internal/service/serialize"
	"EduPortal/internal/storage/postgres"
	"EduPortal/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	ListPublished(ctx context.Context, filter postgres.CourseFilter, limit, offset int) ([]models.CourseRecord, error)
	CountPublished(ctx context.Context, filter postgres.CourseFilter) (int, error)
	PublishedBySlug(ctx context.Context, slug string) (*models.CourseRecord, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
}

type categoryRepo interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CatalogService answers the public course catalog queries. Only
// published courses ever come back from its repository, so nothing here
// re-checks visibility.
type CatalogService struct {
	log        logger.Log
	courses    courseRepo
	categories categoryRepo
	serializer *serialize.Serializer
}

func NewCatalogService(log logger.Log, courses courseRepo, categories categoryRepo, s *serialize.Serializer) *CatalogService {
	return &CatalogService{
		log:        log,
		courses:    courses,
		categories: categories,
		serializer: s,
	}
}

// Filter narrows course listings; both fields are optional.
type Filter struct {
	CategorySlug string
	Search       string
}

func (s *CatalogService) ListCourses(ctx context.Context, filter Filter, limit, offset int) ([]models.CourseSummary, int, error) {
	repoFilter := postgres.CourseFilter{CategorySlug: filter.CategorySlug, Search: filter.Search}
	records, err := s.courses.ListPublished(ctx, repoFilter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courses.CountPublished(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return s.serializer.CourseSummaries(ctx, records), total, nil
}

// CourseBySlug returns the detail shape with the full ordered lesson
// list. Unpublished slugs surface as ErrCourseNotFound from the
// repository.
func (s *CatalogService) CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error) {
	record, err := s.courses.PublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	lessons, err := s.courses.LessonsByCourse(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	detail := s.serializer.CourseDetail(ctx, *record, lessons)
	return &detail, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.ListCategories(ctx)
}
