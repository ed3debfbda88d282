package postgres

import (
	"context"
	"fmt"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostPostgres owns blog storage, published-only like the catalog.
type PostPostgres struct {
	db *pgxpool.Pool
}

func NewPostPostgres(db *pgxpool.Pool) *PostPostgres {
	return &PostPostgres{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.slug, p.content, p.author_id, p.image_key,
	       p.is_published, p.created_at, p.updated_at,
	       u.id, u.username, u.email, u.first_name, u.last_name, u.phone,
	       u.bio, u.avatar_key, u.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

func scanPostRow(rows pgx.Rows) (models.PostWithAuthor, error) {
	var rec models.PostWithAuthor
	err := rows.Scan(
		&rec.ID, &rec.Title, &rec.Slug, &rec.Content, &rec.AuthorID, &rec.ImageKey,
		&rec.IsPublished, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Author.ID, &rec.Author.Username, &rec.Author.Email,
		&rec.Author.FirstName, &rec.Author.LastName, &rec.Author.Phone,
		&rec.Author.Bio, &rec.Author.AvatarKey, &rec.Author.CreatedAt,
	)
	return rec, err
}

const postListQuery = postSelect + `
	WHERE p.is_published
	ORDER BY p.created_at DESC
	LIMIT $1 OFFSET $2
`

func (r *PostPostgres) ListPublished(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error) {
	rows, err := r.db.Query(ctx, postListQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.PostWithAuthor{}
	for rows.Next() {
		rec, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, rec)
	}
	return posts, rows.Err()
}

func (r *PostPostgres) CountPublished(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE is_published`).Scan(&total)
	return total, err
}

func (r *PostPostgres) PublishedBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error) {
	query := postSelect + ` WHERE p.is_published AND p.slug = $1 LIMIT 1`
	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, app_errors.ErrPostNotFound
	}
	rec, err := scanPostRow(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
