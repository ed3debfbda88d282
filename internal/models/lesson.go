package models

import "github.com/google/uuid"

// Lesson belongs to a course and is removed with it.
type Lesson struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"-"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	VideoURL string    `json:"video_url"`
	Order    int       `json:"order"`
	Duration string    `json:"duration"`
	IsFree   bool      `json:"is_free"`
}
