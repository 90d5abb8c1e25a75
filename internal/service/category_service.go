package service

import (
	"context"

	"github.com/business-directory-api/internal/config"
	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/matching"
	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/business-directory-api/internal/seo"
	"github.com/business-directory-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	categoryRepo repository.CategoryRepository
	cfg          *config.Config
	log          zerolog.Logger
}

// newCategoryService creates a new CategoryService
func newCategoryService(categoryRepo repository.CategoryRepository, cfg *config.Config, log zerolog.Logger) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cfg:          cfg,
		log:          log.With().Str("service", "category").Logger(),
	}
}

// Create adds a canonical category with a unique slug
func (s *categoryService) Create(ctx context.Context, in *models.CategoryInput) (*models.Category, error) {
	if verr := validation.ValidateCategoryInput(in); verr != nil {
		return nil, verr
	}

	c := &models.Category{ID: uuid.NewString(), Name: in.Name}

	base := seo.Slugify(c.Name)
	if base == "" {
		base = seo.FallbackSlug
	}

	for attempt := 0; attempt < s.cfg.Directory.SlugMaxRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.categoryRepo, base, "")
		if err != nil {
			return nil, err
		}
		c.Slug = slug

		err = s.categoryRepo.Create(ctx, c)
		if err == nil {
			s.log.Info().Str("category_id", c.ID).Str("name", c.Name).Msg("Category created")
			return c, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
	}

	return nil, models.ErrSlugConflict
}

// Update renames a category. No business backfill happens: labels re-match
// against the new name on the next read.
func (s *categoryService) Update(ctx context.Context, id string, in *models.CategoryInput) (*models.Category, error) {
	if verr := validation.ValidateCategoryInput(in); verr != nil {
		return nil, verr
	}

	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	renamed := c.Name != in.Name
	c.Name = in.Name
	if !renamed {
		return c, nil
	}

	base := seo.Slugify(c.Name)
	if base == "" {
		base = seo.FallbackSlug
	}

	for attempt := 0; attempt < s.cfg.Directory.SlugMaxRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.categoryRepo, base, c.ID)
		if err != nil {
			return nil, err
		}
		c.Slug = slug

		err = s.categoryRepo.Update(ctx, c)
		if err == nil {
			return c, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
	}

	return nil, models.ErrSlugConflict
}

// Delete removes a category. Businesses that matched it fall back to
// unmatched on subsequent reads, which is distinct from "uncategorized".
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("category_id", id).Msg("Category deleted")
	return nil
}

// Get retrieves a category by ID
func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// List retrieves the full canonical set
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// Match resolves a free-text label to its canonical category, or (nil, nil)
func (s *categoryService) Match(ctx context.Context, label string) (*models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return matching.Match(label, categories), nil
}
