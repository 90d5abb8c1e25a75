package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/models"
)

// psql builds statements with PostgreSQL $n placeholders. Every filter value
// travels as a bind parameter; nothing is interpolated into the query text.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var businessColumns = []string{
	"id", "title", "description", "category_label", "address", "city",
	"phone", "email", "website", "slug", "seo_title", "seo_description",
	"seo_title_custom", "seo_description_custom", "featured", "closed",
	"created_at", "updated_at",
}

// businessRepo is the concrete implementation of BusinessRepository
type businessRepo struct {
	db *database.DB
}

// NewBusinessRepo creates a new business repository
func NewBusinessRepo(db *database.DB) BusinessRepository {
	return &businessRepo{db: db}
}

// Create inserts a new business. A unique-index collision on slug surfaces
// as a pq unique violation for the service's retry loop.
func (r *businessRepo) Create(ctx context.Context, b *models.Business) error {
	query := `
		INSERT INTO businesses (id, title, description, category_label, address, city,
			phone, email, website, slug, seo_title, seo_description,
			seo_title_custom, seo_description_custom, featured, closed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Description, b.CategoryLabel, b.Address, b.City,
		b.Phone, b.Email, b.Website, b.Slug, b.SeoTitle, b.SeoDescription,
		b.SeoTitleCustom, b.SeoDescriptionCustom, b.Featured, b.Closed,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// Update rewrites a business row
func (r *businessRepo) Update(ctx context.Context, b *models.Business) error {
	query := `
		UPDATE businesses
		SET title = $2, description = $3, category_label = $4, address = $5, city = $6,
			phone = $7, email = $8, website = $9, slug = $10, seo_title = $11,
			seo_description = $12, seo_title_custom = $13, seo_description_custom = $14,
			featured = $15, closed = $16, updated_at = $17
		WHERE id = $1
	`
	b.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Description, b.CategoryLabel, b.Address, b.City,
		b.Phone, b.Email, b.Website, b.Slug, b.SeoTitle, b.SeoDescription,
		b.SeoTitleCustom, b.SeoDescriptionCustom, b.Featured, b.Closed,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a business and its dependent claims and leads
func (r *businessRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM businesses WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetByID retrieves a business by ID
func (r *businessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return r.getWhere(ctx, "id = $1", id)
}

// GetBySlug retrieves a business by slug
func (r *businessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	return r.getWhere(ctx, "slug = $1", slug)
}

func (r *businessRepo) getWhere(ctx context.Context, cond string, arg interface{}) (*models.Business, error) {
	query := "SELECT " + strings.Join(businessColumns, ", ") + " FROM businesses WHERE " + cond

	var b models.Business
	err := r.db.QueryRowContext(ctx, query, arg).Scan(scanDest(&b)...)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SlugExists checks whether a slug is already taken, optionally ignoring the
// record being updated.
func (r *businessRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM businesses WHERE slug = $1)", slug).Scan(&exists)
	} else {
		err = r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM businesses WHERE slug = $1 AND id <> $2)", slug, excludeID).Scan(&exists)
	}
	return exists, err
}

// List returns businesses matching the filter, featured first and then by
// title and id so pagination is stable across identical calls. The category
// filter is intentionally absent here: it joins against the matcher in the
// service layer, not against a stored foreign key.
func (r *businessRepo) List(ctx context.Context, f *models.BusinessFilter) ([]*models.Business, error) {
	builder := psql.Select(businessColumns...).
		From("businesses").
		OrderBy("featured DESC", "title ASC", "id ASC")

	builder = applyFilter(builder, f)

	if f.Limit > 0 {
		builder = builder.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		builder = builder.Offset(uint64(f.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryBusinesses(ctx, query, args...)
}

// Count returns the number of businesses matching the filter, ignoring
// limit/offset.
func (r *businessRepo) Count(ctx context.Context, f *models.BusinessFilter) (int, error) {
	builder := applyFilter(psql.Select("COUNT(*)").From("businesses"), f)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Random returns up to limit open businesses in a fresh random order on
// every call.
func (r *businessRepo) Random(ctx context.Context, limit int) ([]*models.Business, error) {
	query, args, err := psql.Select(businessColumns...).
		From("businesses").
		Where(sq.Eq{"closed": false}).
		OrderBy("RANDOM()").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryBusinesses(ctx, query, args...)
}

// TotalCount returns the total number of businesses, closed included
func (r *businessRepo) TotalCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM businesses").Scan(&count)
	return count, err
}

// applyFilter translates the filter into AND-combined predicates. Search
// terms are escaped for LIKE metacharacters before binding.
func applyFilter(builder sq.SelectBuilder, f *models.BusinessFilter) sq.SelectBuilder {
	if !f.IncludeClosed {
		builder = builder.Where(sq.Eq{"closed": false})
	}
	if f.City != "" {
		builder = builder.Where(sq.Expr("LOWER(city) = LOWER(?)", f.City))
	}
	if f.Featured != nil {
		builder = builder.Where(sq.Eq{"featured": *f.Featured})
	}
	if f.SearchTerm != "" {
		pattern := "%" + escapeLike(f.SearchTerm) + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"category_label": pattern},
		})
	}
	return builder
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search terms
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *businessRepo) queryBusinesses(ctx context.Context, query string, args ...interface{}) ([]*models.Business, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Business
	for rows.Next() {
		var b models.Business
		if err := rows.Scan(scanDest(&b)...); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// scanDest returns scan targets in businessColumns order
func scanDest(b *models.Business) []interface{} {
	return []interface{}{
		&b.ID, &b.Title, &b.Description, &b.CategoryLabel, &b.Address, &b.City,
		&b.Phone, &b.Email, &b.Website, &b.Slug, &b.SeoTitle, &b.SeoDescription,
		&b.SeoTitleCustom, &b.SeoDescriptionCustom, &b.Featured, &b.Closed,
		&b.CreatedAt, &b.UpdatedAt,
	}
}
