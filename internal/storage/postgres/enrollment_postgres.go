package postgres

import (
	"context"
	"fmt"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

// CreateEnrollment relies on the (user, course) unique constraint to
// reject a second enrollment; the race between concurrent attempts is
// settled by the database.
func (r *EnrollmentPostgres) CreateEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
	}
	query := `
		INSERT INTO enrollments (id, user_id, course_id)
		VALUES ($1, $2, $3)
		RETURNING enrolled_at, completed, progress
	`
	err := r.db.QueryRow(ctx, query, enrollment.ID, userID, courseID).
		Scan(&enrollment.EnrolledAt, &enrollment.Completed, &enrollment.Progress)
	if err != nil {
		if isUniqueViolation(err, "enrollments_user_course_key") {
			return nil, app_errors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}
	return enrollment, nil
}

const enrollmentsByUserQuery = `
	SELECT e.id, e.user_id, e.course_id, e.enrolled_at, e.completed, e.progress,
	       c.id, c.title, c.slug, c.category_id, c.description, c.image_key,
	       c.instructor_id, c.duration, c.level, c.price::text, c.is_free,
	       c.is_published, c.created_at, c.updated_at,
	       cat.id, cat.name, cat.slug, cat.description, cat.icon, cat.cat_order,
	       (SELECT count(*) FROM lessons l WHERE l.course_id = c.id) AS lessons_count
	FROM enrollments e
	JOIN courses c ON c.id = e.course_id
	JOIN categories cat ON cat.id = c.category_id
	WHERE e.user_id = $1
	ORDER BY e.enrolled_at DESC
`

func (r *EnrollmentPostgres) EnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrollmentRecord, error) {
	rows, err := r.db.Query(ctx, enrollmentsByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	records := []models.EnrollmentRecord{}
	for rows.Next() {
		var rec models.EnrollmentRecord
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.CourseID, &rec.EnrolledAt, &rec.Completed, &rec.Progress,
			&rec.Course.ID, &rec.Course.Title, &rec.Course.Slug, &rec.Course.CategoryID,
			&rec.Course.Description, &rec.Course.ImageKey, &rec.Course.InstructorID,
			&rec.Course.Duration, &rec.Course.Level, &rec.Course.Price, &rec.Course.IsFree,
			&rec.Course.IsPublished, &rec.Course.CreatedAt, &rec.Course.UpdatedAt,
			&rec.Course.Category.ID, &rec.Course.Category.Name, &rec.Course.Category.Slug,
			&rec.Course.Category.Description, &rec.Course.Category.Icon, &rec.Course.Category.Order,
			&rec.Course.LessonsCount,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
