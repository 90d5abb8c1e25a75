package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/models"
)

// admin_message and reviewed_by are nullable (reviewed_by is a uuid, so it
// cannot be COALESCEd with a string literal); both scan through Null types.
const claimColumns = `id, business_id, user_id, status, message,
	admin_message, reviewed_by, reviewed_at, created_at, updated_at`

// claimRepo is the concrete implementation of ClaimRepository
type claimRepo struct {
	db *database.DB
}

// NewClaimRepo creates a new ownership-claim repository
func NewClaimRepo(db *database.DB) ClaimRepository {
	return &claimRepo{db: db}
}

// Create inserts a new pending claim. The partial unique index on
// (business_id, user_id) WHERE status IN ('pending','approved') is the
// race-proof backstop for the duplicate-claim invariant; a violation maps to
// ErrDuplicateClaim.
func (r *claimRepo) Create(ctx context.Context, c *models.OwnershipClaim) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ownership_claims (id, business_id, user_id, status, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.BusinessID, c.UserID, c.Status, c.Message, c.CreatedAt, c.UpdatedAt)

	if database.IsUniqueViolation(err) {
		return models.ErrDuplicateClaim
	}
	return err
}

// GetByID retrieves a claim by ID
func (r *claimRepo) GetByID(ctx context.Context, id string) (*models.OwnershipClaim, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+claimColumns+" FROM ownership_claims WHERE id = $1", id)

	c, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ApprovedForBusiness returns approved claims for a business ordered by
// review recency, ties broken by id. Index 0 is the resolved owner.
func (r *claimRepo) ApprovedForBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error) {
	return r.list(ctx, `
		SELECT `+claimColumns+` FROM ownership_claims
		WHERE business_id = $1 AND status = 'approved'
		ORDER BY reviewed_at DESC NULLS LAST, id ASC
	`, businessID)
}

// ListByBusiness returns every claim ever filed for a business
func (r *claimRepo) ListByBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error) {
	return r.list(ctx, `
		SELECT `+claimColumns+` FROM ownership_claims
		WHERE business_id = $1
		ORDER BY created_at DESC, id ASC
	`, businessID)
}

// ListPending returns all claims awaiting review, oldest first
func (r *claimRepo) ListPending(ctx context.Context) ([]*models.OwnershipClaim, error) {
	return r.list(ctx, `
		SELECT `+claimColumns+` FROM ownership_claims
		WHERE status = 'pending'
		ORDER BY created_at ASC, id ASC
	`)
}

// Review transitions a pending claim to its terminal state. The row is
// locked and its status re-checked inside the transaction, so two
// concurrent reviews cannot both succeed and an approval racing a duplicate
// submission is serialized against the partial unique index.
func (r *claimRepo) Review(ctx context.Context, claimID string, status models.ClaimStatus, reviewerID, adminMessage string) (*models.OwnershipClaim, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT "+claimColumns+" FROM ownership_claims WHERE id = $1 FOR UPDATE", claimID)

	c, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Status != models.ClaimStatusPending {
		return nil, models.ErrClaimReviewed
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE ownership_claims
		SET status = $2, admin_message = $3, reviewed_by = $4, reviewed_at = $5, updated_at = $5
		WHERE id = $1
	`, claimID, status, adminMessage, reviewerID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	c.Status = status
	c.AdminMessage = adminMessage
	c.ReviewedBy = reviewerID
	c.ReviewedAt = &now
	c.UpdatedAt = now
	return c, nil
}

func (r *claimRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.OwnershipClaim, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.OwnershipClaim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (*models.OwnershipClaim, error) {
	var c models.OwnershipClaim
	var adminMessage, reviewedBy sql.NullString
	var reviewedAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.BusinessID, &c.UserID, &c.Status, &c.Message,
		&adminMessage, &reviewedBy, &reviewedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.AdminMessage = adminMessage.String
	c.ReviewedBy = reviewedBy.String
	if reviewedAt.Valid {
		c.ReviewedAt = &reviewedAt.Time
	}
	return &c, nil
}
