package models

import (
	"time"

	"github.com/google/uuid"
)

// Term is a glossary entry. Listings are ordered by (Order, Title) and
// only active terms are visible outside the storage layer.
type Term struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
