package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/business-directory-api/internal/models"
	"github.com/google/uuid"
)

func TestLeadService_CreateStartsNew(t *testing.T) {
	env := newTestEnv()
	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café"})

	l := env.seedLead(t, b.ID)
	if l.Status != models.LeadStatusNew {
		t.Errorf("Status = %q, want new", l.Status)
	}
	if l.BusinessID != b.ID {
		t.Errorf("BusinessID = %q", l.BusinessID)
	}
}

func TestLeadService_CreateRejectsClosedBusiness(t *testing.T) {
	env := newTestEnv()
	b := env.seedBusiness(t, &models.BusinessInput{Title: "Shuttered Shop", Closed: true})

	_, err := env.services.Lead.Create(context.Background(), &models.LeadInput{
		BusinessID:  b.ID,
		SenderName:  "Jane",
		SenderEmail: "jane@example.com",
		Message:     "Hello?",
	})
	if !models.IsValidation(err) {
		t.Fatalf("Expected validation error for closed business, got %v", err)
	}
	if len(env.leads.Leads) != 0 {
		t.Error("No lead should be stored")
	}
}

func TestLeadService_CreateRejectsUnknownBusiness(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Lead.Create(context.Background(), &models.LeadInput{
		BusinessID:  uuid.NewString(),
		SenderName:  "Jane",
		SenderEmail: "jane@example.com",
		Message:     "Hello?",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected not found, got %v", err)
	}
}

func TestLeadService_RoutingPartition(t *testing.T) {
	env := newTestEnv()
	owner := env.seedUser(t, "member")
	admin := env.seedUser(t, "admin")

	claimed := env.seedBusiness(t, &models.BusinessInput{Title: "Claimed Café"})
	unclaimed := env.seedBusiness(t, &models.BusinessInput{Title: "Orphan Diner"})

	c, err := env.services.Claim.Create(context.Background(), &models.ClaimInput{
		BusinessID: claimed.ID,
		UserID:     owner.ID,
	})
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	env.approveClaim(t, c.ID, admin.ID)

	claimedLead := env.seedLead(t, claimed.ID)
	orphanLead := env.seedLead(t, unclaimed.ID)

	adminLeads, err := env.services.Lead.LeadsFor(context.Background(), models.AdminActor())
	if err != nil {
		t.Fatalf("Admin listing failed: %v", err)
	}
	ownerLeads, err := env.services.Lead.LeadsFor(context.Background(), models.OwnerActor(owner.ID))
	if err != nil {
		t.Fatalf("Owner listing failed: %v", err)
	}

	if len(adminLeads) != 1 || adminLeads[0].ID != orphanLead.ID {
		t.Errorf("Admin should see exactly the orphan lead, got %d leads", len(adminLeads))
	}
	if len(ownerLeads) != 1 || ownerLeads[0].ID != claimedLead.ID {
		t.Errorf("Owner should see exactly the claimed lead, got %d leads", len(ownerLeads))
	}

	// The two views partition the lead set: together they cover
	// everything, and no lead appears in both.
	seen := make(map[string]int)
	for _, l := range adminLeads {
		seen[l.ID]++
	}
	for _, l := range ownerLeads {
		seen[l.ID]++
	}
	total, _ := env.leads.Count(context.Background())
	if len(seen) != total {
		t.Errorf("Views must cover all %d leads, covered %d", total, len(seen))
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("Lead %s visible to both actors", id)
		}
	}
}

func TestLeadService_RoutingShiftsOnApproval(t *testing.T) {
	env := newTestEnv()
	owner := env.seedUser(t, "member")
	admin := env.seedUser(t, "admin")
	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café"})

	lead := env.seedLead(t, b.ID)

	// Before any approval the lead belongs to the admin view.
	adminLeads, _ := env.services.Lead.LeadsFor(context.Background(), models.AdminActor())
	if len(adminLeads) != 1 || adminLeads[0].ID != lead.ID {
		t.Fatalf("Admin should see the lead pre-approval, got %d", len(adminLeads))
	}
	ownerLeads, _ := env.services.Lead.LeadsFor(context.Background(), models.OwnerActor(owner.ID))
	if len(ownerLeads) != 0 {
		t.Fatalf("Owner should see nothing pre-approval, got %d", len(ownerLeads))
	}

	c, _ := env.services.Claim.Create(context.Background(), &models.ClaimInput{BusinessID: b.ID, UserID: owner.ID})
	env.approveClaim(t, c.ID, admin.ID)

	// Approval reroutes existing leads with no recomputation step.
	adminLeads, _ = env.services.Lead.LeadsFor(context.Background(), models.AdminActor())
	if len(adminLeads) != 0 {
		t.Errorf("Admin should lose the lead post-approval, got %d", len(adminLeads))
	}
	ownerLeads, _ = env.services.Lead.LeadsFor(context.Background(), models.OwnerActor(owner.ID))
	if len(ownerLeads) != 1 || ownerLeads[0].ID != lead.ID {
		t.Errorf("Owner should gain the lead post-approval, got %d", len(ownerLeads))
	}
}

func TestLeadService_OwnerActorRequiresUserID(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Lead.LeadsFor(context.Background(), models.OwnerActor(""))
	if !models.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestLeadService_NonOwnerSeesNothing(t *testing.T) {
	env := newTestEnv()
	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café"})
	env.seedLead(t, b.ID)
	stranger := env.seedUser(t, "member")

	leads, err := env.services.Lead.LeadsFor(context.Background(), models.OwnerActor(stranger.ID))
	if err != nil {
		t.Fatalf("Listing failed: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("User with no approved claim should see nothing, got %d", len(leads))
	}
}

func TestLeadService_UpdateStatus(t *testing.T) {
	env := newTestEnv()
	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café"})
	l := env.seedLead(t, b.ID)

	if err := env.services.Lead.UpdateStatus(context.Background(), l.ID, models.LeadStatusRead); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got, _ := env.services.Lead.Get(context.Background(), l.ID)
	if got.Status != models.LeadStatusRead {
		t.Errorf("Status = %q, want read", got.Status)
	}

	if err := env.services.Lead.UpdateStatus(context.Background(), l.ID, "escalated"); !models.IsValidation(err) {
		t.Errorf("Unknown status should fail validation, got %v", err)
	}
	if err := env.services.Lead.UpdateStatus(context.Background(), uuid.NewString(), models.LeadStatusRead); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Unknown lead should be not found, got %v", err)
	}
}
