package seo

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSlugLen bounds the final slug, city/category segments included.
	MaxSlugLen = 96
	// MaxSegmentLen bounds each appended city/category segment.
	MaxSegmentLen = 24
	// FallbackSlug stands in when the title normalizes to nothing; the
	// uniqueness probe appends a numeric suffix as needed.
	FallbackSlug = "listing"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)

	// NFD-decompose, drop combining marks, recompose: "Café" -> "Cafe".
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify normalizes free text into a URL-safe slug: accents folded to
// ASCII, lower-cased, everything outside [a-z0-9\s-] stripped, whitespace
// and hyphen runs collapsed to a single hyphen, leading/trailing hyphens
// trimmed. "Joe's Café!" becomes "joes-cafe".
func Slugify(s string) string {
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// BaseSlug builds the slug base for a business from its mutable fields.
// City and category, when present, are appended as independently normalized
// segments so "Joe's Café" in Austin under "Restaurants" yields
// "joes-cafe-austin-restaurants". The result is not yet unique; the caller
// probes storage and appends a numeric suffix on collision.
func BaseSlug(title, city, categoryLabel string) string {
	base := Slugify(title)
	if base == "" {
		base = FallbackSlug
	}

	for _, extra := range []string{city, categoryLabel} {
		seg := truncateSlug(Slugify(extra), MaxSegmentLen)
		if seg == "" {
			continue
		}
		base = base + "-" + seg
	}

	return truncateSlug(base, MaxSlugLen)
}

// NumberedSlug appends the collision suffix for the n-th occupant of a base
// slug, re-truncating so the suffix never pushes past the length bound.
func NumberedSlug(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > MaxSlugLen {
		base = truncateSlug(base, MaxSlugLen-len(suffix))
	}
	return base + suffix
}

func truncateSlug(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}
