// internal/adapters/out/postgres/category_repository_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	categorydom "storefront/internal/domain/category"
)

// uniqueViolation is the PostgreSQL error code for a duplicate key.
const uniqueViolation = "23505"

// CategoryRepositoryPG implements category.Repository using PostgreSQL.
// Selected instead of the document store when DATABASE_URL is set.
//
// Schema:
//
//	CREATE TABLE categories (
//	    name TEXT PRIMARY KEY
//	);
type CategoryRepositoryPG struct {
	DB *sql.DB
}

func NewCategoryRepositoryPG(db *sql.DB) *CategoryRepositoryPG {
	return &CategoryRepositoryPG{DB: db}
}

func (r *CategoryRepositoryPG) List(ctx context.Context) ([]categorydom.Category, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("category_repository_pg: db is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []categorydom.Category
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, categorydom.Category{Name: name})
	}
	return out, rows.Err()
}

func (r *CategoryRepositoryPG) Create(ctx context.Context, c categorydom.Category) (categorydom.Category, error) {
	var zero categorydom.Category
	if r == nil || r.DB == nil {
		return zero, errors.New("category_repository_pg: db is nil")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return zero, categorydom.ErrInvalidName
	}

	_, err := r.DB.ExecContext(ctx, `INSERT INTO categories (name) VALUES ($1)`, name)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return zero, categorydom.ErrConflict
		}
		return zero, err
	}
	return categorydom.Category{Name: name}, nil
}

func (r *CategoryRepositoryPG) DeleteByName(ctx context.Context, name string) error {
	if r == nil || r.DB == nil {
		return errors.New("category_repository_pg: db is nil")
	}
	n := strings.TrimSpace(name)
	if n == "" {
		return categorydom.ErrInvalidName
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE name = $1`, n)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return categorydom.ErrNotFound
	}
	return nil
}
