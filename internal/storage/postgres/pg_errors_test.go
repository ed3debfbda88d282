package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	assert.True(t, isUniqueViolation(dup, "users_username_key"))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", dup), "users_username_key"),
		"wrapped errors must still match")
	assert.False(t, isUniqueViolation(dup, "users_email_key"), "constraint name must match")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "users_username_key"}, "users_username_key"))
	assert.False(t, isUniqueViolation(errors.New("plain error"), "users_username_key"))
}
