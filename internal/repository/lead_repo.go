package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/models"
)

const leadColumns = `id, business_id, sender_name, sender_email,
	COALESCE(sender_phone, ''), message, status, created_at, updated_at`

// resolvedOwner picks the current owner of a lead's business: the most
// recently reviewed approved claim, ties broken by id. Matches the order
// used by claimRepo.ApprovedForBusiness so routing and resolution agree.
const resolvedOwner = `(
	SELECT c.user_id FROM ownership_claims c
	WHERE c.business_id = l.business_id AND c.status = 'approved'
	ORDER BY c.reviewed_at DESC NULLS LAST, c.id ASC
	LIMIT 1
)`

// leadRepo is the concrete implementation of LeadRepository
type leadRepo struct {
	db *database.DB
}

// NewLeadRepo creates a new lead repository
func NewLeadRepo(db *database.DB) LeadRepository {
	return &leadRepo{db: db}
}

// Create inserts a new lead
func (r *leadRepo) Create(ctx context.Context, l *models.Lead) error {
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leads (id, business_id, sender_name, sender_email, sender_phone, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, l.ID, l.BusinessID, l.SenderName, l.SenderEmail, l.SenderPhone, l.Message, l.Status, l.CreatedAt, l.UpdatedAt)
	return err
}

// GetByID retrieves a lead by ID
func (r *leadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var l models.Lead
	err := r.db.QueryRowContext(ctx,
		"SELECT "+leadColumns+" FROM leads WHERE id = $1", id).Scan(
		&l.ID, &l.BusinessID, &l.SenderName, &l.SenderEmail, &l.SenderPhone,
		&l.Message, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListForAdmin returns leads whose business has no approved ownership claim.
// Together with ListForOwner this partitions the lead set: every lead is
// visible to exactly one actor, decided at query time from the claims table.
func (r *leadRepo) ListForAdmin(ctx context.Context) ([]*models.Lead, error) {
	return r.list(ctx, `
		SELECT `+leadColumns+` FROM leads l
		WHERE NOT EXISTS (
			SELECT 1 FROM ownership_claims c
			WHERE c.business_id = l.business_id AND c.status = 'approved'
		)
		ORDER BY l.created_at DESC, l.id ASC
	`)
}

// ListForOwner returns leads whose business resolves to this owner
func (r *leadRepo) ListForOwner(ctx context.Context, userID string) ([]*models.Lead, error) {
	return r.list(ctx, `
		SELECT `+leadColumns+` FROM leads l
		WHERE `+resolvedOwner+` = $1
		ORDER BY l.created_at DESC, l.id ASC
	`, userID)
}

// UpdateStatus advances a lead's handling status; the rest of the row is
// immutable after creation.
func (r *leadRepo) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE leads SET status = $2, updated_at = $3 WHERE id = $1", id, status, time.Now())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the total number of leads
func (r *leadRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM leads").Scan(&count)
	return count, err
}

func (r *leadRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Lead, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		var l models.Lead
		err := rows.Scan(
			&l.ID, &l.BusinessID, &l.SenderName, &l.SenderEmail, &l.SenderPhone,
			&l.Message, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
