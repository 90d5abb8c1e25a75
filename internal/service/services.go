package service

import (
	"context"

	"github.com/business-directory-api/internal/config"
	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/rs/zerolog"
)

// BusinessService defines the interface for business listing operations
type BusinessService interface {
	Create(ctx context.Context, in *models.BusinessInput) (*models.Business, error)
	Update(ctx context.Context, id string, in *models.BusinessInput) (*models.Business, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.BusinessWithCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.BusinessWithCategory, error)
	List(ctx context.Context, f *models.BusinessFilter) (*models.BusinessPage, error)
	Random(ctx context.Context, limit int) ([]*models.BusinessWithCategory, error)
	Featured(ctx context.Context, limit int) ([]*models.BusinessWithCategory, error)
	GenerateSlug(ctx context.Context, title, city, categoryLabel, excludeID string) (string, error)
}

// CategoryService defines the interface for canonical-category operations
type CategoryService interface {
	Create(ctx context.Context, in *models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, in *models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	// Match resolves a free-text label against the canonical set,
	// returning (nil, nil) when nothing matches.
	Match(ctx context.Context, label string) (*models.Category, error)
}

// ClaimService defines the interface for ownership-claim operations
type ClaimService interface {
	Create(ctx context.Context, in *models.ClaimInput) (*models.OwnershipClaim, error)
	Review(ctx context.Context, claimID string, in *models.ClaimReviewInput) (*models.OwnershipClaim, error)
	Get(ctx context.Context, id string) (*models.OwnershipClaim, error)
	ListPending(ctx context.Context) ([]*models.OwnershipClaim, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error)
	ResolveOwnership(ctx context.Context, businessID string) (models.Ownership, error)
}

// LeadService defines the interface for lead operations
type LeadService interface {
	Create(ctx context.Context, in *models.LeadInput) (*models.Lead, error)
	LeadsFor(ctx context.Context, actor models.Actor) ([]*models.Lead, error)
	Get(ctx context.Context, id string) (*models.Lead, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error
}

// PageService defines the interface for static-page operations
type PageService interface {
	Create(ctx context.Context, in *models.PageInput) (*models.Page, error)
	Update(ctx context.Context, id string, in *models.PageInput) (*models.Page, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	List(ctx context.Context) ([]*models.Page, error)
}

// UserService defines the interface for user management
type UserService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Services holds all service interfaces
type Services struct {
	Business BusinessService
	Category CategoryService
	Claim    ClaimService
	Lead     LeadService
	Page     PageService
	User     UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	claimSvc := newClaimService(repos.Claim, repos.Business, repos.User, log)

	return &Services{
		Business: newBusinessService(repos.Business, repos.Category, cfg, log),
		Category: newCategoryService(repos.Category, cfg, log),
		Claim:    claimSvc,
		Lead:     newLeadService(repos.Lead, repos.Business, log),
		Page:     newPageService(repos.Page, cfg, log),
		User:     newUserService(repos.User, log),
	}
}
