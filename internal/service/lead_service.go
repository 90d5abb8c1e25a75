package service

import (
	"context"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/business-directory-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// leadService is the concrete implementation of LeadService
type leadService struct {
	leadRepo     repository.LeadRepository
	businessRepo repository.BusinessRepository
	log          zerolog.Logger
}

// newLeadService creates a new LeadService
func newLeadService(leadRepo repository.LeadRepository, businessRepo repository.BusinessRepository, log zerolog.Logger) *leadService {
	return &leadService{
		leadRepo:     leadRepo,
		businessRepo: businessRepo,
		log:          log.With().Str("service", "lead").Logger(),
	}
}

// Create records a contact-form submission for an open business
func (s *leadService) Create(ctx context.Context, in *models.LeadInput) (*models.Lead, error) {
	if verr := validation.ValidateLeadInput(in); verr != nil {
		return nil, verr
	}

	b, err := s.businessRepo.GetByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if b.Closed {
		return nil, models.NewValidationError(models.FieldError{
			Field:   "business_id",
			Message: "business is closed and does not accept leads",
			Value:   in.BusinessID,
		})
	}

	l := &models.Lead{
		ID:          uuid.NewString(),
		BusinessID:  in.BusinessID,
		SenderName:  in.SenderName,
		SenderEmail: in.SenderEmail,
		SenderPhone: in.SenderPhone,
		Message:     in.Message,
		Status:      models.LeadStatusNew,
	}

	if err := s.leadRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.log.Info().Str("lead_id", l.ID).Str("business_id", l.BusinessID).Msg("Lead created")
	return l, nil
}

// LeadsFor returns exactly the leads the actor is entitled to see: the
// admin gets leads of unclaimed businesses, an owner gets leads of
// businesses that resolve to them. The two sets partition the lead set with
// no overlap, decided at query time from the claims table.
func (s *leadService) LeadsFor(ctx context.Context, actor models.Actor) ([]*models.Lead, error) {
	if actor.Admin {
		return s.leadRepo.ListForAdmin(ctx)
	}
	if actor.UserID == "" {
		return nil, models.NewValidationError(models.FieldError{
			Field:   "actor",
			Message: "owner actor requires a user id",
		})
	}
	return s.leadRepo.ListForOwner(ctx, actor.UserID)
}

// Get retrieves a lead by ID
func (s *leadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	return s.leadRepo.GetByID(ctx, id)
}

// UpdateStatus advances a lead's handling status
func (s *leadService) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	if !models.ValidLeadStatuses[status] {
		return models.NewValidationError(models.FieldError{
			Field:   "status",
			Message: "status must be one of: new, read, archived",
			Value:   string(status),
		})
	}
	return s.leadRepo.UpdateStatus(ctx, id, status)
}
