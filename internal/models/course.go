package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type Course struct {
	ID           uuid.UUID
	Title        string
	Slug         string
	CategoryID   uuid.UUID
	Description  string
	ImageKey     string
	InstructorID *uuid.UUID // nullable: instructor deletion keeps the course
	Duration     string
	Level        string
	Price        string // NUMERIC(10,2), serialized as a string
	IsFree       bool
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CourseRecord is the repository row for course queries: the course with
// its category and instructor resolved and the lesson count computed, so
// list endpoints never have to fetch lesson collections.
type CourseRecord struct {
	Course
	Category     Category
	Instructor   *User
	LessonsCount int
}

// CourseSummary is the list shape: category and instructor embedded by
// reference, lessons replaced by their count.
type CourseSummary struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Category     Category     `json:"category"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"image"`
	Instructor   *UserProfile `json:"instructor"`
	Duration     string       `json:"duration"`
	Level        string       `json:"level"`
	Price        string       `json:"price"`
	IsFree       bool         `json:"is_free"`
	LessonsCount int          `json:"lessons_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CourseDetail is the retrieve shape: the full lesson list, ordered by
// lesson order, replaces the count.
type CourseDetail struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Category    Category     `json:"category"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image"`
	Instructor  *UserProfile `json:"instructor"`
	Duration    string       `json:"duration"`
	Level       string       `json:"level"`
	Price       string       `json:"price"`
	IsFree      bool         `json:"is_free"`
	Lessons     []Lesson     `json:"lessons"`
	CreatedAt   time.Time    `json:"created_at"`
}
