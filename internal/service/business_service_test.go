package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/business-directory-api/internal/mocks"
	"github.com/business-directory-api/internal/models"
)

func TestBusinessService_CreateDerivesSlugAndSeo(t *testing.T) {
	env := newTestEnv()
	env.seedCategory(t, "1", "Restaurants")

	b := env.seedBusiness(t, &models.BusinessInput{
		Title:         "Joe's Café",
		CategoryLabel: "restaurant",
		City:          "Austin",
		Phone:         "555-0100",
	})

	if b.Slug != "joes-cafe-austin-restaurant" {
		t.Errorf("Slug = %q", b.Slug)
	}
	if b.SeoTitle != "Joe's Café - Austin | Restaurants" {
		t.Errorf("SeoTitle = %q", b.SeoTitle)
	}
	if b.SeoDescription == "" {
		t.Error("SeoDescription should be synthesized")
	}
	if b.SeoTitleCustom || b.SeoDescriptionCustom {
		t.Error("Derived SEO fields must not be marked custom")
	}
}

func TestBusinessService_CreateValidationFailsBeforeWrite(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Business.Create(context.Background(), &models.BusinessInput{Title: ""})
	if !models.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if len(env.businesses.Businesses) != 0 {
		t.Error("Nothing should be persisted on validation failure")
	}
}

func TestBusinessService_SlugCollisionGetsNumericSuffix(t *testing.T) {
	env := newTestEnv()

	in := &models.BusinessInput{Title: "Joe's Café", City: "Austin"}
	first := env.seedBusiness(t, in)
	second := env.seedBusiness(t, in)
	third := env.seedBusiness(t, in)

	if first.Slug != "joes-cafe-austin" {
		t.Errorf("First slug = %q", first.Slug)
	}
	if second.Slug != "joes-cafe-austin-2" {
		t.Errorf("Second slug = %q", second.Slug)
	}
	if third.Slug != "joes-cafe-austin-3" {
		t.Errorf("Third slug = %q", third.Slug)
	}
}

func TestBusinessService_CreateRetriesLostSlugRace(t *testing.T) {
	env := newTestEnv()

	// First insert attempt loses the race at the unique index even though
	// the probe said the slug was free.
	env.businesses.CreateErr = mocks.UniqueViolation("businesses_slug_key")

	b, err := env.services.Business.Create(context.Background(), &models.BusinessInput{
		Title: "Joe's Café",
		City:  "Austin",
	})
	if err != nil {
		t.Fatalf("Create should succeed after reprobe: %v", err)
	}
	if b.Slug == "" {
		t.Error("Slug should be allocated on retry")
	}
}

func TestBusinessService_CreateSurfacesNonSlugErrors(t *testing.T) {
	env := newTestEnv()

	boom := errors.New("connection reset")
	env.businesses.CreateErr = boom

	_, err := env.services.Business.Create(context.Background(), &models.BusinessInput{Title: "X"})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected underlying error, got %v", err)
	}
}

func TestBusinessService_OperatorSeoValuesAreSticky(t *testing.T) {
	env := newTestEnv()

	b := env.seedBusiness(t, &models.BusinessInput{
		Title:    "Joe's Café",
		City:     "Austin",
		SeoTitle: "Hand-written title",
	})
	if b.SeoTitle != "Hand-written title" {
		t.Fatalf("Operator title overwritten: %q", b.SeoTitle)
	}
	if !b.SeoTitleCustom {
		t.Fatal("Operator title should be marked custom")
	}
	if b.SeoDescriptionCustom {
		t.Fatal("Description was never customized")
	}

	// A later edit re-derives the description but must not touch the title.
	updated, err := env.services.Business.Update(context.Background(), b.ID, &models.BusinessInput{
		Title: "Joe's Café",
		City:  "Dallas",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.SeoTitle != "Hand-written title" {
		t.Errorf("Sticky title lost on update: %q", updated.SeoTitle)
	}
	if updated.SeoDescription == "" || updated.SeoDescriptionCustom {
		t.Errorf("Description should stay derived: %q custom=%v", updated.SeoDescription, updated.SeoDescriptionCustom)
	}
}

func TestBusinessService_UpdateKeepsSlugWhenSourcesUnchanged(t *testing.T) {
	env := newTestEnv()

	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})
	slug := b.Slug

	updated, err := env.services.Business.Update(context.Background(), b.ID, &models.BusinessInput{
		Title:       "Joe's Café",
		City:        "Austin",
		Description: "Now with a description",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != slug {
		t.Errorf("Slug changed without a source change: %q -> %q", slug, updated.Slug)
	}
}

func TestBusinessService_UpdateRegeneratesSlugOnTitleChange(t *testing.T) {
	env := newTestEnv()

	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})

	updated, err := env.services.Business.Update(context.Background(), b.ID, &models.BusinessInput{
		Title: "Joe's Bistro",
		City:  "Austin",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "joes-bistro-austin" {
		t.Errorf("Slug = %q", updated.Slug)
	}

	if _, err := env.services.Business.GetBySlug(context.Background(), "joes-bistro-austin"); err != nil {
		t.Errorf("New slug not resolvable: %v", err)
	}
}

func TestBusinessService_UpdateKeepsOwnSlugOnRename(t *testing.T) {
	env := newTestEnv()

	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})

	// Renaming back and forth must not collide with the row's own slug.
	if _, err := env.services.Business.Update(context.Background(), b.ID, &models.BusinessInput{Title: "Joe's Bistro", City: "Austin"}); err != nil {
		t.Fatalf("First rename failed: %v", err)
	}
	back, err := env.services.Business.Update(context.Background(), b.ID, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})
	if err != nil {
		t.Fatalf("Rename back failed: %v", err)
	}
	if back.Slug != "joes-cafe-austin" {
		t.Errorf("Slug = %q, want joes-cafe-austin", back.Slug)
	}
}

func TestBusinessService_GetResolvesCategoryAtReadTime(t *testing.T) {
	env := newTestEnv()
	env.seedCategory(t, "1", "Restaurants")

	b := env.seedBusiness(t, &models.BusinessInput{Title: "Taco Stand", CategoryLabel: "Mexican restaurant"})

	got, err := env.services.Business.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Category == nil || got.Category.Name != "Restaurants" {
		t.Errorf("Category = %+v", got.Category)
	}
	if got.Uncategorized {
		t.Error("Labeled business must not be uncategorized")
	}
}

func TestBusinessService_GetDistinguishesUnmatchedFromUncategorized(t *testing.T) {
	env := newTestEnv()
	env.seedCategory(t, "1", "Restaurants")

	unlabeled := env.seedBusiness(t, &models.BusinessInput{Title: "Mystery Shop"})
	unmatched := env.seedBusiness(t, &models.BusinessInput{Title: "Rocket Lab", CategoryLabel: "Aerospace"})

	got, _ := env.services.Business.Get(context.Background(), unlabeled.ID)
	if !got.Uncategorized || got.Category != nil {
		t.Errorf("Unlabeled: uncategorized=%v category=%+v", got.Uncategorized, got.Category)
	}

	got, _ = env.services.Business.Get(context.Background(), unmatched.ID)
	if got.Uncategorized || got.Category != nil {
		t.Errorf("Unmatched label: uncategorized=%v category=%+v", got.Uncategorized, got.Category)
	}
}

func TestBusinessService_ListExcludesClosedByDefault(t *testing.T) {
	env := newTestEnv()

	env.seedBusiness(t, &models.BusinessInput{Title: "Open Shop"})
	env.seedBusiness(t, &models.BusinessInput{Title: "Closed Shop", Closed: true})

	page, err := env.services.Business.List(context.Background(), &models.BusinessFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 1 || len(page.Rows) != 1 || page.Rows[0].Title != "Open Shop" {
		t.Fatalf("Expected only the open shop, got total=%d rows=%d", page.Total, len(page.Rows))
	}

	page, err = env.services.Business.List(context.Background(), &models.BusinessFilter{IncludeClosed: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("IncludeClosed should see both, got %d", page.Total)
	}
}

func TestBusinessService_ListFiltersByCategoryInMemory(t *testing.T) {
	env := newTestEnv()
	restaurants := env.seedCategory(t, "00000000-0000-0000-0000-000000000001", "Restaurants")
	env.seedCategory(t, "00000000-0000-0000-0000-000000000002", "Plumbers")

	env.seedBusiness(t, &models.BusinessInput{Title: "Taco Stand", CategoryLabel: "Mexican restaurant"})
	env.seedBusiness(t, &models.BusinessInput{Title: "Burger Joint", CategoryLabel: "Restaurants"})
	env.seedBusiness(t, &models.BusinessInput{Title: "Pipe Masters", CategoryLabel: "Plumber"})

	page, err := env.services.Business.List(context.Background(), &models.BusinessFilter{CategoryID: restaurants.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Expected 2 restaurants, got %d", page.Total)
	}
	for _, row := range page.Rows {
		if row.Category == nil || row.Category.ID != restaurants.ID {
			t.Errorf("Row %q resolved to %+v", row.Title, row.Category)
		}
	}
}

func TestBusinessService_CategoryFilterPaginatesAfterMatching(t *testing.T) {
	env := newTestEnv()
	restaurants := env.seedCategory(t, "00000000-0000-0000-0000-000000000001", "Restaurants")

	for _, title := range []string{"Alpha Diner", "Bravo Diner", "Charlie Diner"} {
		env.seedBusiness(t, &models.BusinessInput{Title: title, CategoryLabel: "Restaurants"})
	}

	page, err := env.services.Business.List(context.Background(), &models.BusinessFilter{
		CategoryID: restaurants.ID,
		Limit:      2,
		Offset:     2,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("Total should count the whole matched set, got %d", page.Total)
	}
	if len(page.Rows) != 1 || page.Rows[0].Title != "Charlie Diner" {
		t.Fatalf("Expected the last diner on page 2, got %d rows", len(page.Rows))
	}
}

func TestBusinessService_ListOrdersFeaturedFirst(t *testing.T) {
	env := newTestEnv()

	env.seedBusiness(t, &models.BusinessInput{Title: "Aardvark Repair"})
	env.seedBusiness(t, &models.BusinessInput{Title: "Zebra Cleaning", Featured: true})

	page, err := env.services.Business.List(context.Background(), &models.BusinessFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Rows) != 2 || page.Rows[0].Title != "Zebra Cleaning" {
		t.Fatalf("Featured row should sort first, got %+v", page.Rows[0].Title)
	}
}

func TestBusinessService_FeaturedReturnsOnlyFeatured(t *testing.T) {
	env := newTestEnv()

	env.seedBusiness(t, &models.BusinessInput{Title: "Plain Shop"})
	env.seedBusiness(t, &models.BusinessInput{Title: "Star Shop", Featured: true})

	rows, err := env.services.Business.Featured(context.Background(), 10)
	if err != nil {
		t.Fatalf("Featured failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Star Shop" {
		t.Fatalf("Expected only the featured shop, got %d rows", len(rows))
	}
}

func TestBusinessService_DeleteFreesSlug(t *testing.T) {
	env := newTestEnv()

	b := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})
	if err := env.services.Business.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	again := env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})
	if again.Slug != "joes-cafe-austin" {
		t.Errorf("Freed slug should be reusable, got %q", again.Slug)
	}

	if _, err := env.services.Business.Get(context.Background(), b.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Deleted business should be gone, got %v", err)
	}
}

func TestBusinessService_GenerateSlugDoesNotPersist(t *testing.T) {
	env := newTestEnv()
	env.seedBusiness(t, &models.BusinessInput{Title: "Joe's Café", City: "Austin"})

	slug, err := env.services.Business.GenerateSlug(context.Background(), "Joe's Café", "Austin", "", "")
	if err != nil {
		t.Fatalf("GenerateSlug failed: %v", err)
	}
	if slug != "joes-cafe-austin-2" {
		t.Errorf("Probe should skip the taken slug, got %q", slug)
	}
	if len(env.businesses.Businesses) != 1 {
		t.Error("GenerateSlug must not write anything")
	}
}
