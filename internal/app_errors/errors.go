package app_errors

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("this username is already taken")
var ErrEmailTaken = errors.New("this email is already registered")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrTokenNotFound = errors.New("token not found")
var ErrSessionExpired = errors.New("session expired")
var ErrCourseNotFound = errors.New("course not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrTermNotFound = errors.New("term not found")
var ErrPostNotFound = errors.New("post not found")
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")
var ErrForbidden = errors.New("operation not allowed")
var ErrNotImage = errors.New("not an image")
var ErrFileSize = errors.New("file size error")

// ValidationError carries field-level messages, serialized verbatim as
// the 400 response body.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	for field, msgs := range e.Fields {
		if len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}
	return "validation error"
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}
