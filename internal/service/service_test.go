package service_test

import (
	"context"
	"testing"

	"github.com/business-directory-api/internal/config"
	"github.com/business-directory-api/internal/mocks"
	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/business-directory-api/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// testEnv wires every service against the map-backed mocks so tests can
// drive the full engine and inspect stored state directly.
type testEnv struct {
	businesses *mocks.MockBusinessRepository
	categories *mocks.MockCategoryRepository
	claims     *mocks.MockClaimRepository
	leads      *mocks.MockLeadRepository
	users      *mocks.MockUserRepository
	pages      *mocks.MockPageRepository
	services   *service.Services
}

func newTestEnv() *testEnv {
	env := &testEnv{
		businesses: mocks.NewMockBusinessRepository(),
		categories: mocks.NewMockCategoryRepository(),
		claims:     mocks.NewMockClaimRepository(),
		users:      mocks.NewMockUserRepository(),
		pages:      mocks.NewMockPageRepository(),
	}
	env.leads = mocks.NewMockLeadRepository(env.claims)

	repos := &repository.Repositories{
		Business: env.businesses,
		Category: env.categories,
		Claim:    env.claims,
		Lead:     env.leads,
		User:     env.users,
		Page:     env.pages,
	}

	cfg := &config.Config{
		Directory: config.DirectoryConfig{
			DefaultPageSize: 20,
			SlugMaxRetries:  5,
		},
	}

	env.services = service.NewServices(repos, cfg, zerolog.Nop())
	return env
}

func (env *testEnv) seedCategory(t *testing.T, id, name string) *models.Category {
	t.Helper()
	c := &models.Category{ID: id, Name: name, Slug: name}
	if err := env.categories.Create(context.Background(), c); err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return c
}

func (env *testEnv) seedUser(t *testing.T, role string) *models.User {
	t.Helper()
	u := &models.User{
		ID:     uuid.NewString(),
		Email:  uuid.NewString() + "@test.com",
		Name:   "Test User",
		Role:   role,
		Active: true,
	}
	if err := env.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (env *testEnv) seedBusiness(t *testing.T, in *models.BusinessInput) *models.Business {
	t.Helper()
	b, err := env.services.Business.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("seed business %q: %v", in.Title, err)
	}
	return b
}

func (env *testEnv) seedLead(t *testing.T, businessID string) *models.Lead {
	t.Helper()
	l, err := env.services.Lead.Create(context.Background(), &models.LeadInput{
		BusinessID:  businessID,
		SenderName:  "Jane Caller",
		SenderEmail: "jane@example.com",
		Message:     "Are you open on Sundays?",
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return l
}

func (env *testEnv) approveClaim(t *testing.T, claimID, reviewerID string) *models.OwnershipClaim {
	t.Helper()
	c, err := env.services.Claim.Review(context.Background(), claimID, &models.ClaimReviewInput{
		Decision:   models.ClaimDecisionApprove,
		ReviewerID: reviewerID,
	})
	if err != nil {
		t.Fatalf("approve claim: %v", err)
	}
	return c
}
