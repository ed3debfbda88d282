package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Content     string
	AuthorID    uuid.UUID
	ImageKey    string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostWithAuthor is the repository row for post queries.
type PostWithAuthor struct {
	Post
	Author User
}

// PostView is the wire shape: author embedded by reference.
type PostView struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Content     string      `json:"content"`
	Author      UserProfile `json:"author"`
	ImageURL    string      `json:"image"`
	IsPublished bool        `json:"is_published"`
	CreatedAt   time.Time   `json:"created_at"`
}
