package service

import (
	"context"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/business-directory-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// claimService is the concrete implementation of ClaimService
type claimService struct {
	claimRepo    repository.ClaimRepository
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	log          zerolog.Logger
}

// newClaimService creates a new ClaimService
func newClaimService(claimRepo repository.ClaimRepository, businessRepo repository.BusinessRepository, userRepo repository.UserRepository, log zerolog.Logger) *claimService {
	return &claimService{
		claimRepo:    claimRepo,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		log:          log.With().Str("service", "claim").Logger(),
	}
}

// Create submits a new pending claim. A second submission while the user
// already has a pending or approved claim for the same business fails with
// ErrDuplicateClaim; the partial unique index makes the check race-proof.
func (s *claimService) Create(ctx context.Context, in *models.ClaimInput) (*models.OwnershipClaim, error) {
	if verr := validation.ValidateClaimInput(in); verr != nil {
		return nil, verr
	}

	if _, err := s.businessRepo.GetByID(ctx, in.BusinessID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	c := &models.OwnershipClaim{
		ID:         uuid.NewString(),
		BusinessID: in.BusinessID,
		UserID:     in.UserID,
		Status:     models.ClaimStatusPending,
		Message:    in.Message,
	}

	if err := s.claimRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("claim_id", c.ID).
		Str("business_id", c.BusinessID).
		Str("user_id", c.UserID).
		Msg("Ownership claim submitted")

	return c, nil
}

// Review applies an admin decision to a pending claim. Approval establishes
// the business's resolved owner with immediate effect on lead routing; no
// recomputation step exists, the next read reflects it.
func (s *claimService) Review(ctx context.Context, claimID string, in *models.ClaimReviewInput) (*models.OwnershipClaim, error) {
	if verr := validation.ValidateClaimReviewInput(in); verr != nil {
		return nil, verr
	}

	// Resolve the reviewer up front; otherwise a well-formed but unknown
	// id only fails at the reviewed_by foreign key.
	if _, err := s.userRepo.GetByID(ctx, in.ReviewerID); err != nil {
		return nil, err
	}

	status := models.ClaimStatusRejected
	if in.Decision == models.ClaimDecisionApprove {
		status = models.ClaimStatusApproved
	}

	c, err := s.claimRepo.Review(ctx, claimID, status, in.ReviewerID, in.AdminMessage)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("claim_id", c.ID).
		Str("business_id", c.BusinessID).
		Str("status", string(c.Status)).
		Str("reviewed_by", c.ReviewedBy).
		Msg("Ownership claim reviewed")

	return c, nil
}

// Get retrieves a claim by ID
func (s *claimService) Get(ctx context.Context, id string) (*models.OwnershipClaim, error) {
	return s.claimRepo.GetByID(ctx, id)
}

// ListPending returns all claims awaiting review
func (s *claimService) ListPending(ctx context.Context) ([]*models.OwnershipClaim, error) {
	return s.claimRepo.ListPending(ctx)
}

// ListByBusiness returns every claim filed for a business
func (s *claimService) ListByBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}
	return s.claimRepo.ListByBusiness(ctx, businessID)
}

// ResolveOwnership determines whether the business is claimed and by whom.
// More than one approved claim means the uniqueness invariant was broken by
// a defect elsewhere; resolution stays deterministic (most recently
// reviewed wins) and the violation is logged rather than surfaced.
func (s *claimService) ResolveOwnership(ctx context.Context, businessID string) (models.Ownership, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return models.Ownership{}, err
	}

	approved, err := s.claimRepo.ApprovedForBusiness(ctx, businessID)
	if err != nil {
		return models.Ownership{}, err
	}

	if len(approved) == 0 {
		return models.Ownership{}, nil
	}

	if len(approved) > 1 {
		s.log.Error().
			Str("business_id", businessID).
			Int("approved_claims", len(approved)).
			Msg("Invariant violation: multiple approved claims for one business")
	}

	return models.Ownership{Claimed: true, OwnerID: approved[0].UserID}, nil
}
