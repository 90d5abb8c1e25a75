package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/models"
)

const pageColumns = `id, title, body, slug, seo_title, seo_description,
	seo_title_custom, seo_description_custom, published, created_at, updated_at`

// pageRepo is the concrete implementation of PageRepository
type pageRepo struct {
	db *database.DB
}

// NewPageRepo creates a new page repository
func NewPageRepo(db *database.DB) PageRepository {
	return &pageRepo{db: db}
}

// Create inserts a new page; slug collisions surface as unique violations
// for the service's retry loop, same as businesses.
func (r *pageRepo) Create(ctx context.Context, p *models.Page) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pages (id, title, body, slug, seo_title, seo_description,
			seo_title_custom, seo_description_custom, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Title, p.Body, p.Slug, p.SeoTitle, p.SeoDescription,
		p.SeoTitleCustom, p.SeoDescriptionCustom, p.Published, p.CreatedAt, p.UpdatedAt)
	return err
}

// Update rewrites a page row
func (r *pageRepo) Update(ctx context.Context, p *models.Page) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, `
		UPDATE pages
		SET title = $2, body = $3, slug = $4, seo_title = $5, seo_description = $6,
			seo_title_custom = $7, seo_description_custom = $8, published = $9, updated_at = $10
		WHERE id = $1
	`, p.ID, p.Title, p.Body, p.Slug, p.SeoTitle, p.SeoDescription,
		p.SeoTitleCustom, p.SeoDescriptionCustom, p.Published, p.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a page
func (r *pageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pages WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetByID retrieves a page by ID
func (r *pageRepo) GetByID(ctx context.Context, id string) (*models.Page, error) {
	return r.getWhere(ctx, "id = $1", id)
}

// GetBySlug retrieves a page by slug
func (r *pageRepo) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	return r.getWhere(ctx, "slug = $1", slug)
}

func (r *pageRepo) getWhere(ctx context.Context, cond string, arg interface{}) (*models.Page, error) {
	var p models.Page
	err := r.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE "+cond, arg).Scan(
		&p.ID, &p.Title, &p.Body, &p.Slug, &p.SeoTitle, &p.SeoDescription,
		&p.SeoTitleCustom, &p.SeoDescriptionCustom, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugExists checks whether a page slug is already taken
func (r *pageRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1)", slug).Scan(&exists)
	} else {
		err = r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1 AND id <> $2)", slug, excludeID).Scan(&exists)
	}
	return exists, err
}

// GetAll retrieves all pages ordered by title
func (r *pageRepo) GetAll(ctx context.Context) ([]*models.Page, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM pages ORDER BY title ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Page
	for rows.Next() {
		var p models.Page
		err := rows.Scan(
			&p.ID, &p.Title, &p.Body, &p.Slug, &p.SeoTitle, &p.SeoDescription,
			&p.SeoTitleCustom, &p.SeoDescriptionCustom, &p.Published, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
