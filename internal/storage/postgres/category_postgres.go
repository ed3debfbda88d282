package postgres

import (
	"context"
	"fmt"

	"EduPortal/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryPostgres struct {
	db *pgxpool.Pool
}

func NewCategoryPostgres(db *pgxpool.Pool) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

const categoryListQuery = `
	SELECT id, name, slug, description, icon, cat_order
	FROM categories
	ORDER BY cat_order, name
`

func (r *CategoryPostgres) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, categoryListQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Order); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
