package seo_test

import (
	"strings"
	"testing"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/seo"
)

func TestSynthesizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		city     string
		category string
		want     string
	}{
		{"all parts", "Joe's Café", "Austin", "Restaurants", "Joe's Café - Austin | Restaurants"},
		{"no category", "Joe's Café", "Austin", "", "Joe's Café - Austin"},
		{"no city", "Joe's Café", "", "Restaurants", "Joe's Café | Restaurants"},
		{"title only", "Joe's Café", "", "", "Joe's Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seo.SynthesizeTitle(tt.title, tt.city, tt.category)
			if got != tt.want {
				t.Errorf("SynthesizeTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizeTitle_TruncatedToBudget(t *testing.T) {
	got := seo.SynthesizeTitle(strings.Repeat("Long Title ", 20), "Springfield", "Restaurants")
	if n := len([]rune(got)); n > seo.TitleBudget {
		t.Fatalf("Title exceeds budget: %d runes", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Expected ellipsis on truncated title, got %q", got)
	}
}

func TestSynthesizeDescription_PrefersOwnDescription(t *testing.T) {
	b := &models.Business{
		Title:       "Joe's Café",
		Description: "Family-owned coffee house serving breakfast all day.",
		Address:     "1 Main St",
		City:        "Austin",
		Phone:       "555-0100",
	}

	got := seo.SynthesizeDescription(b)
	if got != b.Description {
		t.Fatalf("Expected own description to be reused, got %q", got)
	}
}

func TestSynthesizeDescription_FallsBackWhenTooShort(t *testing.T) {
	b := &models.Business{
		Title:       "Joe's Café",
		Description: "Nice place.",
		Address:     "1 Main St",
		City:        "Austin",
		Phone:       "555-0100",
	}

	got := seo.SynthesizeDescription(b)
	want := "Joe's Café is located at 1 Main St, Austin. Call 555-0100 for more information."
	if got != want {
		t.Fatalf("SynthesizeDescription = %q, want %q", got, want)
	}
}

func TestSynthesizeDescription_OmitsMissingParts(t *testing.T) {
	b := &models.Business{Title: "Joe's Café", City: "Austin"}

	got := seo.SynthesizeDescription(b)
	want := "Joe's Café is located at Austin."
	if got != want {
		t.Fatalf("SynthesizeDescription = %q, want %q", got, want)
	}

	bare := &models.Business{Title: "Joe's Café"}
	if got := seo.SynthesizeDescription(bare); got != "Joe's Café." {
		t.Fatalf("Bare business: got %q", got)
	}
}

func TestSynthesizeDescription_TruncatedToBudget(t *testing.T) {
	b := &models.Business{
		Title:       "Joe's Café",
		Description: strings.Repeat("A very long description sentence. ", 20),
	}

	got := seo.SynthesizeDescription(b)
	if n := len([]rune(got)); n > seo.DescriptionBudget {
		t.Fatalf("Description exceeds budget: %d runes", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Expected ellipsis on truncated description, got %q", got)
	}
}

func TestSynthesize_CombinesBothFields(t *testing.T) {
	b := &models.Business{
		Title: "Joe's Café",
		City:  "Austin",
		Phone: "555-0100",
	}

	meta := seo.Synthesize(b, "Restaurants")
	if meta.Title != "Joe's Café - Austin | Restaurants" {
		t.Errorf("Title = %q", meta.Title)
	}
	if !strings.Contains(meta.Description, "Call 555-0100") {
		t.Errorf("Description = %q", meta.Description)
	}
}

func TestTruncate(t *testing.T) {
	if got := seo.Truncate("short", 10); got != "short" {
		t.Errorf("Under budget should be untouched, got %q", got)
	}

	got := seo.Truncate("exactly-ten", 10)
	if n := len([]rune(got)); n > 10 {
		t.Errorf("Over budget not truncated: %q", got)
	}

	// Rune-safe: multibyte characters must never be split.
	multibyte := strings.Repeat("é", 40)
	got = seo.Truncate(multibyte, 10)
	if n := len([]rune(got)); n > 10 {
		t.Errorf("Rune budget exceeded: %d", n)
	}
	for _, r := range got {
		if r != 'é' && r != '.' {
			t.Fatalf("Truncate split a rune: %q", got)
		}
	}
}
