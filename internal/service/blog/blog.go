package blog

import (
	"context"

	"EduPortal/internal/models"
	"EduPortal/internal/service/serialize"
	"EduPortal/pkg/logger"
)

type postRepo interface {
	ListPublished(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error)
	CountPublished(ctx context.Context) (int, error)
	PublishedBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error)
}

// BlogService serves the published side of the blog; drafts never leave
// the repository.
type BlogService struct {
	log        logger.Log
	posts      postRepo
	serializer *serialize.Serializer
}

func NewBlogService(log logger.Log, posts postRepo, s *serialize.Serializer) *BlogService {
	return &BlogService{log: log, posts: posts, serializer: s}
}

func (s *BlogService) ListPosts(ctx context.Context, limit, offset int) ([]models.PostView, int, error) {
	records, err := s.posts.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.posts.CountPublished(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.serializer.PostViews(ctx, records), total, nil
}

func (s *BlogService) PostBySlug(ctx context.Context, slug string) (*models.PostView, error) {
	record, err := s.posts.PublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	view := s.serializer.PostView(ctx, *record)
	return &view, nil
}
