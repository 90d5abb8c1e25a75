package repository

import (
	"context"

	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/models"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	Create(ctx context.Context, b *models.Business) error
	Update(ctx context.Context, b *models.Business) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, f *models.BusinessFilter) ([]*models.Business, error)
	Count(ctx context.Context, f *models.BusinessFilter) (int, error)
	Random(ctx context.Context, limit int) ([]*models.Business, error)
	TotalCount(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetAll(ctx context.Context) ([]*models.Category, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ClaimRepository defines the interface for ownership-claim data operations
type ClaimRepository interface {
	Create(ctx context.Context, c *models.OwnershipClaim) error
	GetByID(ctx context.Context, id string) (*models.OwnershipClaim, error)
	// ApprovedForBusiness returns approved claims newest-reviewed first.
	// More than one row means the pending/approved-uniqueness invariant
	// was violated elsewhere; the caller resolves deterministically.
	ApprovedForBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error)
	ListPending(ctx context.Context) ([]*models.OwnershipClaim, error)
	// Review transitions a pending claim to approved or rejected inside a
	// transaction, re-validating the pending status before committing.
	Review(ctx context.Context, claimID string, status models.ClaimStatus, reviewerID, adminMessage string) (*models.OwnershipClaim, error)
}

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	Create(ctx context.Context, l *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	// ListForAdmin returns leads whose business has no approved claim.
	ListForAdmin(ctx context.Context) ([]*models.Lead, error)
	// ListForOwner returns leads whose business resolves to this owner.
	ListForOwner(ctx context.Context, userID string) ([]*models.Lead, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	// Delete removes a user, refusing to remove the last active admin.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PageRepository defines the interface for static-page data operations
type PageRepository interface {
	Create(ctx context.Context, p *models.Page) error
	Update(ctx context.Context, p *models.Page) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	GetAll(ctx context.Context) ([]*models.Page, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Business BusinessRepository
	Category CategoryRepository
	Claim    ClaimRepository
	Lead     LeadRepository
	User     UserRepository
	Page     PageRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Business: NewBusinessRepo(db),
		Category: NewCategoryRepo(db),
		Claim:    NewClaimRepo(db),
		Lead:     NewLeadRepo(db),
		User:     NewUserRepo(db),
		Page:     NewPageRepo(db),
	}
}
