package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The deletion semantics and list orderings live in SQL, out of reach of
// the in-memory fakes the service tests use. These tests pin the schema
// and query text so dropping an ON DELETE action or an ORDER BY clause
// fails the suite.

func TestSchemaForeignKeyActions(t *testing.T) {
	mustMatch := func(pattern string) {
		t.Helper()
		assert.Regexp(t, regexp.MustCompile(pattern), schema)
	}

	t.Run("category deletion removes its courses", func(t *testing.T) {
		mustMatch(`category_id\s+UUID NOT NULL REFERENCES categories \(id\) ON DELETE CASCADE`)
	})

	t.Run("instructor deletion keeps the course", func(t *testing.T) {
		mustMatch(`instructor_id\s+UUID REFERENCES users \(id\) ON DELETE SET NULL`)
	})

	t.Run("course deletion removes lessons and enrollments", func(t *testing.T) {
		courseFK := regexp.MustCompile(`course_id\s+UUID NOT NULL REFERENCES courses \(id\) ON DELETE CASCADE`)
		assert.Len(t, courseFK.FindAllString(schema, -1), 2,
			"lessons and enrollments must both cascade from courses")
	})

	t.Run("user deletion removes tokens, enrollments and posts", func(t *testing.T) {
		userFK := regexp.MustCompile(`UUID NOT NULL REFERENCES users \(id\) ON DELETE CASCADE`)
		assert.Len(t, userFK.FindAllString(schema, -1), 3,
			"auth_tokens, enrollments and posts must all cascade from users")
	})

	t.Run("one enrollment per user and course", func(t *testing.T) {
		mustMatch(`CONSTRAINT enrollments_user_course_key UNIQUE \(user_id, course_id\)`)
	})

	t.Run("unique slugs and identities", func(t *testing.T) {
		for _, constraint := range []string{
			"users_username_key UNIQUE (username)",
			"users_email_key UNIQUE (email)",
			"auth_tokens_user_id_key UNIQUE (user_id)",
			"categories_slug_key UNIQUE (slug)",
			"courses_slug_key UNIQUE (slug)",
			"posts_slug_key UNIQUE (slug)",
		} {
			assert.Contains(t, schema, constraint)
		}
	})
}

func TestListQueriesCarryOrdering(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		orderBy string
	}{
		{"terms list", termListQuery, "ORDER BY term_order, title"},
		{"terms search", termSearchQuery, "ORDER BY term_order, title"},
		{"categories", categoryListQuery, "ORDER BY cat_order, name"},
		{"courses", courseListQuery, "ORDER BY c.created_at DESC"},
		{"lessons within a course", lessonsByCourseQuery, "ORDER BY lesson_order"},
		{"posts", postListQuery, "ORDER BY p.created_at DESC"},
		{"enrollments", enrollmentsByUserQuery, "ORDER BY e.enrolled_at DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.query, tt.orderBy)
		})
	}
}
