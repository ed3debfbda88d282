// Package policy holds the visibility and permission rules, one explicit
// function per guarded operation, so each rule is testable in isolation.
package policy

import (
	"EduPortal/internal/models"

	"github.com/google/uuid"
)

// Caller identifies the requesting principal. The zero value is an
// anonymous caller.
type Caller struct {
	ID            uuid.UUID
	Authenticated bool
}

func Anonymous() Caller {
	return Caller{}
}

func Authenticated(id uuid.UUID) Caller {
	return Caller{ID: id, Authenticated: true}
}

// CanViewCourse gates course detail lookups. Unpublished courses are
// invisible and must surface as not-found, never as forbidden.
func CanViewCourse(_ Caller, course models.Course) bool {
	return course.IsPublished
}

// CanViewTerm gates glossary term lookups.
func CanViewTerm(_ Caller, term models.Term) bool {
	return term.IsActive
}

// CanViewPost gates blog post lookups.
func CanViewPost(_ Caller, post models.Post) bool {
	return post.IsPublished
}

// CanMutateTerms gates create/update/delete on glossary terms.
func CanMutateTerms(caller Caller) bool {
	return caller.Authenticated
}

// CanReadUser grants user record reads to any authenticated caller.
func CanReadUser(caller Caller, _ models.User) bool {
	return caller.Authenticated
}

// CanModifyUser restricts writes and deletes to the record owner.
func CanModifyUser(caller Caller, target models.User) bool {
	return caller.Authenticated && caller.ID == target.ID
}

// CanEnroll allows an authenticated caller to enroll into a published
// course.
func CanEnroll(caller Caller, course models.Course) bool {
	return caller.Authenticated && course.IsPublished
}

// CanViewEnrollments restricts enrollment listings to the owning user.
func CanViewEnrollments(caller Caller, ownerID uuid.UUID) bool {
	return caller.Authenticated && caller.ID == ownerID
}
