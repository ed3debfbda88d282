package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the opaque bearer credential for the JSON API.
// Exactly one token exists per user; issuance is get-or-create.
type AuthToken struct {
	Key       string
	UserID    uuid.UUID
	CreatedAt time.Time
}
