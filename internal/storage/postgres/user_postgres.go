package postgres

import (
	"context"
	"errors"
	"fmt"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

const userColumns = `id, username, email, password, first_name, last_name, phone, bio, avatar_key, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password,
		&u.FirstName, &u.LastName, &u.Phone, &u.Bio,
		&u.AvatarKey, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// UserByUsername matches the username exactly, case-sensitive.
func (r *UserPostgres) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *UserPostgres) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, username, email, password, first_name, last_name, phone, bio, avatar_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.Password,
		user.FirstName, user.LastName, user.Phone, user.Bio, user.AvatarKey,
	).Scan(&user.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_username_key"):
			return nil, app_errors.ErrUsernameTaken
		case isUniqueViolation(err, "users_email_key"):
			return nil, app_errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

func (r *UserPostgres) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Password,
			&u.FirstName, &u.LastName, &u.Phone, &u.Bio,
			&u.AvatarKey, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserPostgres) CountUsers(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total)
	return total, err
}

func (r *UserPostgres) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
		UPDATE users
		   SET email = $2, first_name = $3, last_name = $4, phone = $5, bio = $6
		 WHERE id = $1
		RETURNING ` + userColumns + `
	`
	updated, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.Phone, user.Bio,
	))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, app_errors.ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *UserPostgres) SetAvatarKey(ctx context.Context, id uuid.UUID, key string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET avatar_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrUserNotFound
	}
	return nil
}

func (r *UserPostgres) DeleteUser(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrUserNotFound
	}
	return nil
}
