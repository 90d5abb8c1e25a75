package seo

import (
	"strings"

	"github.com/business-directory-api/internal/models"
)

const (
	// TitleBudget is the hard character limit for derived SEO titles,
	// sized for search-result display.
	TitleBudget = 60
	// DescriptionBudget is the hard character limit for derived SEO
	// descriptions.
	DescriptionBudget = 155
	// minDescriptionLen is the shortest own-description worth reusing;
	// anything shorter falls back to the synthesized template.
	minDescriptionLen = 20

	ellipsis = "..."
)

// Metadata holds the derived SEO fields for a record
type Metadata struct {
	Title       string
	Description string
}

// Synthesize derives SEO metadata for a business snapshot. categoryName is
// the resolved canonical category, empty when the label matched nothing.
// The caller decides which of the two fields to apply: operator-entered
// values are sticky and must never be overwritten by derivation.
func Synthesize(b *models.Business, categoryName string) Metadata {
	return Metadata{
		Title:       SynthesizeTitle(b.Title, b.City, categoryName),
		Description: SynthesizeDescription(b),
	}
}

// SynthesizeTitle builds "{title} - {city} | {category}", dropping the parts
// that are absent, hard-truncated to TitleBudget.
func SynthesizeTitle(title, city, categoryName string) string {
	out := title
	if city != "" {
		out += " - " + city
	}
	if categoryName != "" {
		out += " | " + categoryName
	}
	return Truncate(out, TitleBudget)
}

// SynthesizeDescription prefers the business's own description; when that is
// absent or too short it falls back to a sentence assembled from title,
// address, city, and phone. Either way the result fits DescriptionBudget.
func SynthesizeDescription(b *models.Business) string {
	desc := strings.TrimSpace(b.Description)
	if len(desc) >= minDescriptionLen {
		return Truncate(desc, DescriptionBudget)
	}

	var sb strings.Builder
	sb.WriteString(b.Title)

	location := joinNonEmpty(", ", strings.TrimSpace(b.Address), strings.TrimSpace(b.City))
	if location != "" {
		sb.WriteString(" is located at ")
		sb.WriteString(location)
	}
	sb.WriteString(".")

	if phone := strings.TrimSpace(b.Phone); phone != "" {
		sb.WriteString(" Call ")
		sb.WriteString(phone)
		sb.WriteString(" for more information.")
	}

	return Truncate(sb.String(), DescriptionBudget)
}

// Truncate hard-truncates s to budget characters, replacing the tail with an
// ellipsis when it does not fit.
func Truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	if budget <= len(ellipsis) {
		return string(runes[:budget])
	}
	return strings.TrimSpace(string(runes[:budget-len(ellipsis)])) + ellipsis
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
