package service

import (
	"context"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/seo"
)

// maxSuffixProbes bounds the check-then-pick loop; with the unique index as
// the real guarantee this only limits pathological data sets.
const maxSuffixProbes = 500

// slugStore is the slice of a repository the probe needs
type slugStore interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// uniqueSlug probes storage for the first free candidate: the base itself,
// then base-2, base-3, and so on. The probe is inherently racy; the caller
// inserts under the slug unique index and retries with a fresh probe when it
// loses the race.
func uniqueSlug(ctx context.Context, store slugStore, base, excludeID string) (string, error) {
	candidate := base
	for n := 2; n < maxSuffixProbes; n++ {
		exists, err := store.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = seo.NumberedSlug(base, n)
	}
	return "", models.ErrSlugConflict
}
