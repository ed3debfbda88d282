// Package serialize maps storage records to wire shapes. Media object
// keys are resolved to presigned URLs here and nowhere else; a failed
// resolution degrades to an empty URL instead of failing the request.
package serialize

import (
	"context"

	"EduPortal/internal/models"
	"EduPortal/pkg/logger"
)

type MediaURLs interface {
	URL(ctx context.Context, objectKey string) (string, error)
}

type Serializer struct {
	log   logger.Log
	media MediaURLs
}

func New(log logger.Log, media MediaURLs) *Serializer {
	return &Serializer{log: log, media: media}
}

func (s *Serializer) mediaURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	u, err := s.media.URL(ctx, key)
	if err != nil {
		s.log.ErrorErr("failed to presign media URL", err, "key", key)
		return ""
	}
	return u
}

func (s *Serializer) UserProfile(ctx context.Context, user models.User) models.UserProfile {
	return models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Bio:       user.Bio,
		AvatarURL: s.mediaURL(ctx, user.AvatarKey),
		CreatedAt: user.CreatedAt,
	}
}

func (s *Serializer) CourseSummary(ctx context.Context, rec models.CourseRecord) models.CourseSummary {
	summary := models.CourseSummary{
		ID:           rec.ID,
		Title:        rec.Title,
		Slug:         rec.Slug,
		Category:     rec.Category,
		Description:  rec.Description,
		ImageURL:     s.mediaURL(ctx, rec.ImageKey),
		Duration:     rec.Duration,
		Level:        rec.Level,
		Price:        rec.Price,
		IsFree:       rec.IsFree,
		LessonsCount: rec.LessonsCount,
		CreatedAt:    rec.Course.CreatedAt,
	}
	if rec.Instructor != nil {
		profile := s.UserProfile(ctx, *rec.Instructor)
		summary.Instructor = &profile
	}
	return summary
}

func (s *Serializer) CourseSummaries(ctx context.Context, recs []models.CourseRecord) []models.CourseSummary {
	summaries := make([]models.CourseSummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, s.CourseSummary(ctx, rec))
	}
	return summaries
}

func (s *Serializer) CourseDetail(ctx context.Context, rec models.CourseRecord, lessons []models.Lesson) models.CourseDetail {
	detail := models.CourseDetail{
		ID:          rec.ID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		Category:    rec.Category,
		Description: rec.Description,
		ImageURL:    s.mediaURL(ctx, rec.ImageKey),
		Duration:    rec.Duration,
		Level:       rec.Level,
		Price:       rec.Price,
		IsFree:      rec.IsFree,
		Lessons:     lessons,
		CreatedAt:   rec.Course.CreatedAt,
	}
	if rec.Instructor != nil {
		profile := s.UserProfile(ctx, *rec.Instructor)
		detail.Instructor = &profile
	}
	if detail.Lessons == nil {
		detail.Lessons = []models.Lesson{}
	}
	return detail
}

func (s *Serializer) PostView(ctx context.Context, rec models.PostWithAuthor) models.PostView {
	return models.PostView{
		ID:          rec.ID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		Content:     rec.Content,
		Author:      s.UserProfile(ctx, rec.Author),
		ImageURL:    s.mediaURL(ctx, rec.ImageKey),
		IsPublished: rec.IsPublished,
		CreatedAt:   rec.Post.CreatedAt,
	}
}

func (s *Serializer) PostViews(ctx context.Context, recs []models.PostWithAuthor) []models.PostView {
	views := make([]models.PostView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, s.PostView(ctx, rec))
	}
	return views
}

func (s *Serializer) EnrollmentView(ctx context.Context, rec models.EnrollmentRecord) models.EnrollmentView {
	return models.EnrollmentView{
		ID:         rec.ID,
		Course:     s.CourseSummary(ctx, rec.Course),
		EnrolledAt: rec.EnrolledAt,
		Completed:  rec.Completed,
		Progress:   rec.Progress,
	}
}

func (s *Serializer) EnrollmentViews(ctx context.Context, recs []models.EnrollmentRecord) []models.EnrollmentView {
	views := make([]models.EnrollmentView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, s.EnrollmentView(ctx, rec))
	}
	return views
}
