package enrollment

import (
	"context"

	"EduPortal/internal/models"
	"EduPortal/internal/service/serialize"
	"EduPortal/pkg/logger"

	"github.com/google/uuid"
)

type enrollmentRepo interface {
	CreateEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	EnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrollmentRecord, error)
}

type courseRepo interface {
	PublishedBySlug(ctx context.Context, slug string) (*models.CourseRecord, error)
}

type EnrollmentService struct {
	log         logger.Log
	enrollments enrollmentRepo
	courses     courseRepo
	serializer  *serialize.Serializer
}

func NewEnrollmentService(log logger.Log, enrollments enrollmentRepo, courses courseRepo, s *serialize.Serializer) *EnrollmentService {
	return &EnrollmentService{log: log, enrollments: enrollments, courses: courses, serializer: s}
}

// Enroll registers a user on a published course. An unpublished or
// unknown slug surfaces as ErrCourseNotFound, so enrollment leaks
// nothing about hidden courses.
func (s *EnrollmentService) Enroll(ctx context.Context, userID uuid.UUID, courseSlug string) (*models.Enrollment, error) {
	course, err := s.courses.PublishedBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollments.CreateEnrollment(ctx, userID, course.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("user enrolled", "user_id", userID, "course", courseSlug)
	return enrollment, nil
}

func (s *EnrollmentService) EnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrollmentView, error) {
	records, err := s.enrollments.EnrollmentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.serializer.EnrollmentViews(ctx, records), nil
}
