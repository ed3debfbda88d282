package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string // bcrypt hash, never serialized
	FirstName string
	LastName  string
	Phone     string
	Bio       string
	AvatarKey string
	CreatedAt time.Time
}

// UserProfile is the wire shape for a user, embedded by reference in
// courses and posts. The password hash never leaves the storage layer
// boundary in any other shape either.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
