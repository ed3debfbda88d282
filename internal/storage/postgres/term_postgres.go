package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TermPostgres owns glossary storage. Read methods only ever see active
// terms; inactive rows are invisible to every caller of this repository,
// so the active gate cannot be forgotten further up.
type TermPostgres struct {
	db *pgxpool.Pool
}

func NewTermPostgres(db *pgxpool.Pool) *TermPostgres {
	return &TermPostgres{db: db}
}

const termColumns = `id, title, description, term_order, is_active, created_at, updated_at`

const termListQuery = `
	SELECT ` + termColumns + `
	FROM terms
	WHERE is_active
	ORDER BY term_order, title
`

const termSearchQuery = `
	SELECT ` + termColumns + `
	FROM terms
	WHERE is_active AND (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
	ORDER BY term_order, title
`

func (r *TermPostgres) ListActive(ctx context.Context) ([]models.Term, error) {
	return r.queryTerms(ctx, termListQuery)
}

// SearchActive matches the query as a case-insensitive substring of
// title or description, keeping the (order, title) ordering.
func (r *TermPostgres) SearchActive(ctx context.Context, q string) ([]models.Term, error) {
	return r.queryTerms(ctx, termSearchQuery, q)
}

func (r *TermPostgres) queryTerms(ctx context.Context, query string, args ...any) ([]models.Term, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	terms := []models.Term{}
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Order, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (r *TermPostgres) ActiveByID(ctx context.Context, id uuid.UUID) (*models.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE id = $1 AND is_active`
	var t models.Term
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Title, &t.Description, &t.Order, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrTermNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TermPostgres) CreateTerm(ctx context.Context, term models.Term) (*models.Term, error) {
	if term.ID == uuid.Nil {
		term.ID = uuid.New()
	}
	query := `
		INSERT INTO terms (id, title, description, term_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, term.ID, term.Title, term.Description, term.Order, term.IsActive).
		Scan(&term.CreatedAt, &term.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert term: %w", err)
	}
	return &term, nil
}

func (r *TermPostgres) UpdateTerm(ctx context.Context, term models.Term) (*models.Term, error) {
	query := `
		UPDATE terms
		   SET title = $2, description = $3, term_order = $4, is_active = $5, updated_at = $6
		 WHERE id = $1 AND is_active
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		term.ID, term.Title, term.Description, term.Order, term.IsActive, time.Now().UTC(),
	).Scan(&term.CreatedAt, &term.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrTermNotFound
		}
		return nil, err
	}
	return &term, nil
}

func (r *TermPostgres) DeleteTerm(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM terms WHERE id = $1 AND is_active`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrTermNotFound
	}
	return nil
}
