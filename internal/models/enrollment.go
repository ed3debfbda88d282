package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment ties a user to a course. The (user, course) pair is unique,
// enforced by the storage layer.
type Enrollment struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CourseID   uuid.UUID
	EnrolledAt time.Time
	Completed  bool
	Progress   int // 0-100
}

// EnrollmentRecord is an enrollment joined with its course, as shown on
// the profile page and the enrollments endpoint.
type EnrollmentRecord struct {
	Enrollment
	Course CourseRecord
}

// EnrollmentView is the wire shape of an enrollment record.
type EnrollmentView struct {
	ID         uuid.UUID     `json:"id"`
	Course     CourseSummary `json:"course"`
	EnrolledAt time.Time     `json:"enrolled_at"`
	Completed  bool          `json:"completed"`
	Progress   int           `json:"progress"`
}
