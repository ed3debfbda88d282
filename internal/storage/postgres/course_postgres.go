package postgres

import (
	"context"
	"fmt"
	"time"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CoursePostgres owns catalog storage. Every read method is restricted
// to published courses; the published gate lives in the SQL, not in the
// callers.
type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

// CourseFilter narrows published-course listings. Zero values mean no
// filtering.
type CourseFilter struct {
	CategorySlug string
	Search       string
}

const courseSelect = `
	SELECT c.id, c.title, c.slug, c.category_id, c.description, c.image_key,
	       c.instructor_id, c.duration, c.level, c.price::text, c.is_free,
	       c.is_published, c.created_at, c.updated_at,
	       cat.id, cat.name, cat.slug, cat.description, cat.icon, cat.cat_order,
	       u.username, u.email, u.first_name, u.last_name, u.phone,
	       u.bio, u.avatar_key, u.created_at,
	       (SELECT count(*) FROM lessons l WHERE l.course_id = c.id) AS lessons_count
	FROM courses c
	JOIN categories cat ON cat.id = c.category_id
	LEFT JOIN users u ON u.id = c.instructor_id
`

func scanCourseRecord(rows pgx.Rows) (models.CourseRecord, error) {
	var rec models.CourseRecord
	var username, email, firstName, lastName, phone, bio, avatarKey *string
	var instructorCreatedAt *time.Time

	err := rows.Scan(
		&rec.ID, &rec.Title, &rec.Slug, &rec.CategoryID, &rec.Description, &rec.ImageKey,
		&rec.InstructorID, &rec.Duration, &rec.Level, &rec.Price, &rec.IsFree,
		&rec.IsPublished, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Category.ID, &rec.Category.Name, &rec.Category.Slug,
		&rec.Category.Description, &rec.Category.Icon, &rec.Category.Order,
		&username, &email, &firstName, &lastName, &phone,
		&bio, &avatarKey, &instructorCreatedAt,
		&rec.LessonsCount,
	)
	if err != nil {
		return rec, err
	}
	if rec.InstructorID != nil {
		rec.Instructor = &models.User{
			ID:        *rec.InstructorID,
			Username:  deref(username),
			Email:     deref(email),
			FirstName: deref(firstName),
			LastName:  deref(lastName),
			Phone:     deref(phone),
			Bio:       deref(bio),
			AvatarKey: deref(avatarKey),
		}
		if instructorCreatedAt != nil {
			rec.Instructor.CreatedAt = *instructorCreatedAt
		}
	}
	return rec, nil
}

const courseListQuery = courseSelect + `
	WHERE c.is_published
	  AND ($1 = '' OR cat.slug = $1)
	  AND ($2 = '' OR c.title ILIKE '%' || $2 || '%' OR c.description ILIKE '%' || $2 || '%')
	ORDER BY c.created_at DESC
	LIMIT $3 OFFSET $4
`

func (r *CoursePostgres) ListPublished(ctx context.Context, filter CourseFilter, limit, offset int) ([]models.CourseRecord, error) {
	rows, err := r.db.Query(ctx, courseListQuery, filter.CategorySlug, filter.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	records := []models.CourseRecord{}
	for rows.Next() {
		rec, err := scanCourseRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *CoursePostgres) CountPublished(ctx context.Context, filter CourseFilter) (int, error) {
	query := `
		SELECT count(*)
		FROM courses c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.is_published
		  AND ($1 = '' OR cat.slug = $1)
		  AND ($2 = '' OR c.title ILIKE '%' || $2 || '%' OR c.description ILIKE '%' || $2 || '%')
	`
	var total int
	err := r.db.QueryRow(ctx, query, filter.CategorySlug, filter.Search).Scan(&total)
	return total, err
}

// PublishedBySlug reports not-found for unpublished slugs so their
// existence is not leaked.
func (r *CoursePostgres) PublishedBySlug(ctx context.Context, slug string) (*models.CourseRecord, error) {
	query := courseSelect + ` WHERE c.is_published AND c.slug = $1 LIMIT 1`
	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query course: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, app_errors.ErrCourseNotFound
	}
	rec, err := scanCourseRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

const lessonsByCourseQuery = `
	SELECT id, course_id, title, content, video_url, lesson_order, duration, is_free
	FROM lessons
	WHERE course_id = $1
	ORDER BY lesson_order
`

func (r *CoursePostgres) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	rows, err := r.db.Query(ctx, lessonsByCourseQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Content, &l.VideoURL, &l.Order, &l.Duration, &l.IsFree); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
