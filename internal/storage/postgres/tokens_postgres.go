package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokensPostgres struct {
	db *pgxpool.Pool
}

func NewTokensPostgres(db *pgxpool.Pool) *TokensPostgres {
	return &TokensPostgres{db: db}
}

func newTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GetOrCreate returns the user's token, minting one only if none exists.
// The upsert makes concurrent requests for the same user converge on a
// single row.
func (r *TokensPostgres) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	key, err := newTokenKey()
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = excluded.user_id
		RETURNING key, created_at
	`
	token := &models.AuthToken{UserID: userID}
	if err := r.db.QueryRow(ctx, query, key, userID).Scan(&token.Key, &token.CreatedAt); err != nil {
		return nil, err
	}
	return token, nil
}

func (r *TokensPostgres) ByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	query := `SELECT key, user_id, created_at FROM auth_tokens WHERE key = $1`
	token := &models.AuthToken{}
	err := r.db.QueryRow(ctx, query, key).Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

func (r *TokensPostgres) DeleteUserToken(ctx context.Context, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrTokenNotFound
	}
	return nil
}
