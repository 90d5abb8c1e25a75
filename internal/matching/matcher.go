package matching

import (
	"strings"

	"github.com/business-directory-api/internal/models"
)

// Businesses carry a free-text category label rather than a foreign key, so
// the canonical category is re-derived on every read. Match is a pure
// function over (label, category set): no side effects, no persistence, and
// the same inputs always produce the same output.
//
// Priority order, first level with any hit wins:
//  1. exact case-sensitive equality
//  2. label + "s" equals the category name (singular label, plural category)
//  3. label minus a trailing "s" equals the category name (plural label,
//     singular category)
//  4. substring containment after folding the Restaurant/Restaurants
//     irregular plural
//  5. general case-insensitive substring containment in either direction
//
// Ties within a level are broken by lowest category id so the result is
// stable across calls regardless of the order the categories arrive in.
func Match(label string, categories []*models.Category) *models.Category {
	if label == "" || len(categories) == 0 {
		return nil
	}

	for _, rule := range rules {
		var best *models.Category
		for _, c := range categories {
			if c == nil || c.Name == "" {
				continue
			}
			if !rule(label, c.Name) {
				continue
			}
			if best == nil || c.ID < best.ID {
				best = c
			}
		}
		if best != nil {
			return best
		}
	}

	return nil
}

type matchRule func(label, name string) bool

var rules = []matchRule{
	matchExact,
	matchSingularLabel,
	matchPluralLabel,
	matchRestaurantFold,
	matchSubstring,
}

func matchExact(label, name string) bool {
	return label == name
}

func matchSingularLabel(label, name string) bool {
	return label+"s" == name
}

func matchPluralLabel(label, name string) bool {
	return strings.HasSuffix(label, "s") && strings.TrimSuffix(label, "s") == name
}

// matchRestaurantFold handles the one irregular pluralization the directory
// data is known to contain: "Mexican restaurant" must still land in the
// canonical "Restaurants" category.
func matchRestaurantFold(label, name string) bool {
	l := foldRestaurant(strings.ToLower(label))
	n := foldRestaurant(strings.ToLower(name))
	return strings.Contains(l, n) || strings.Contains(n, l)
}

func foldRestaurant(s string) string {
	return strings.ReplaceAll(s, "restaurants", "restaurant")
}

func matchSubstring(label, name string) bool {
	l := strings.ToLower(label)
	n := strings.ToLower(name)
	return strings.Contains(l, n) || strings.Contains(n, l)
}
