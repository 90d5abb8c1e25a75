package matching_test

import (
	"testing"

	"github.com/business-directory-api/internal/matching"
	"github.com/business-directory-api/internal/models"
)

func cat(id, name string) *models.Category {
	return &models.Category{ID: id, Name: name}
}

func TestMatch_ExactWinsOverEverything(t *testing.T) {
	categories := []*models.Category{
		cat("1", "Restaurant"),
		cat("2", "Restaurants"),
	}

	got := matching.Match("Restaurant", categories)
	if got == nil || got.ID != "1" {
		t.Fatalf("Expected exact match on id 1, got %+v", got)
	}
}

func TestMatch_SingularLabelPluralCategory(t *testing.T) {
	categories := []*models.Category{
		cat("1", "Plumbers"),
		cat("2", "Electricians"),
	}

	got := matching.Match("Plumber", categories)
	if got == nil || got.Name != "Plumbers" {
		t.Fatalf("Expected Plumbers, got %+v", got)
	}
}

func TestMatch_PluralLabelSingularCategory(t *testing.T) {
	categories := []*models.Category{
		cat("1", "Bakery"),
		cat("2", "Plumber"),
	}

	got := matching.Match("Plumbers", categories)
	if got == nil || got.Name != "Plumber" {
		t.Fatalf("Expected Plumber, got %+v", got)
	}
}

func TestMatch_RestaurantFold(t *testing.T) {
	categories := []*models.Category{
		cat("1", "Restaurants"),
		cat("2", "Bars"),
	}

	got := matching.Match("Mexican restaurant", categories)
	if got == nil || got.Name != "Restaurants" {
		t.Fatalf("Expected 'Mexican restaurant' to land in Restaurants, got %+v", got)
	}
}

func TestMatch_SubstringEitherDirection(t *testing.T) {
	categories := []*models.Category{
		cat("1", "Auto Repair"),
	}

	if got := matching.Match("auto repair shop", categories); got == nil || got.ID != "1" {
		t.Errorf("Label containing category name should match, got %+v", got)
	}
	if got := matching.Match("Repair", categories); got == nil || got.ID != "1" {
		t.Errorf("Category name containing label should match, got %+v", got)
	}
}

func TestMatch_NoMatchReturnsNil(t *testing.T) {
	categories := []*models.Category{
		cat("1", "Restaurants"),
		cat("2", "Plumbers"),
	}

	if got := matching.Match("Quantum Computing", categories); got != nil {
		t.Fatalf("Expected nil for unmatched label, got %+v", got)
	}
}

func TestMatch_EmptyInputs(t *testing.T) {
	if got := matching.Match("", []*models.Category{cat("1", "Restaurants")}); got != nil {
		t.Errorf("Empty label should not match, got %+v", got)
	}
	if got := matching.Match("Restaurants", nil); got != nil {
		t.Errorf("Empty category set should not match, got %+v", got)
	}
}

func TestMatch_HigherRuleBeatsLowerRule(t *testing.T) {
	// "Plumber" matches "Plumbers" at the singular/plural level and
	// "Plumber Supply Depot" only at the substring level; the earlier
	// level must win regardless of id order.
	categories := []*models.Category{
		cat("1", "Plumber Supply Depot"),
		cat("2", "Plumbers"),
	}

	got := matching.Match("Plumber", categories)
	if got == nil || got.Name != "Plumbers" {
		t.Fatalf("Expected Plumbers via singular/plural rule, got %+v", got)
	}
}

func TestMatch_TieBrokenByLowestID(t *testing.T) {
	a := cat("7", "Cafe")
	b := cat("3", "Cafes and Coffee")

	// Both hit at the same containment level for "cafe".
	forward := matching.Match("cafe", []*models.Category{a, b})
	reversed := matching.Match("cafe", []*models.Category{b, a})

	if forward == nil || forward.ID != "3" {
		t.Fatalf("Expected lowest id 3 to win, got %+v", forward)
	}
	if reversed == nil || reversed.ID != forward.ID {
		t.Fatalf("Result must not depend on input order: got %+v then %+v", forward, reversed)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	categories := []*models.Category{
		cat("5", "Restaurants"),
		cat("2", "Bars"),
		cat("9", "Bakeries"),
	}

	first := matching.Match("restaurant", categories)
	for i := 0; i < 50; i++ {
		again := matching.Match("restaurant", categories)
		if again == nil || first == nil || again.ID != first.ID {
			t.Fatalf("Match not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestMatch_SkipsNilAndUnnamedCategories(t *testing.T) {
	categories := []*models.Category{
		nil,
		cat("1", ""),
		cat("2", "Restaurants"),
	}

	got := matching.Match("Restaurants", categories)
	if got == nil || got.ID != "2" {
		t.Fatalf("Expected id 2, got %+v", got)
	}
}
