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

// businessService is the concrete implementation of BusinessService
type businessService struct {
	businessRepo repository.BusinessRepository
	categoryRepo repository.CategoryRepository
	cfg          *config.Config
	log          zerolog.Logger
}

// newBusinessService creates a new BusinessService
func newBusinessService(businessRepo repository.BusinessRepository, categoryRepo repository.CategoryRepository, cfg *config.Config, log zerolog.Logger) *businessService {
	return &businessService{
		businessRepo: businessRepo,
		categoryRepo: categoryRepo,
		cfg:          cfg,
		log:          log.With().Str("service", "business").Logger(),
	}
}

// Create validates the input, derives slug and SEO metadata, and persists
// the listing. Slug allocation races are lost to the unique index and
// retried with a fresh probe up to the configured bound.
func (s *businessService) Create(ctx context.Context, in *models.BusinessInput) (*models.Business, error) {
	if verr := validation.ValidateBusinessInput(in); verr != nil {
		return nil, verr
	}

	b := &models.Business{ID: uuid.NewString()}
	applyInput(b, in)

	if err := s.applySeo(ctx, b); err != nil {
		return nil, err
	}

	base := seo.BaseSlug(b.Title, b.City, b.CategoryLabel)
	for attempt := 0; attempt < s.cfg.Directory.SlugMaxRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.businessRepo, base, "")
		if err != nil {
			return nil, err
		}
		b.Slug = slug

		err = s.businessRepo.Create(ctx, b)
		if err == nil {
			s.log.Info().Str("business_id", b.ID).Str("slug", b.Slug).Msg("Business created")
			return b, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
		s.log.Warn().Str("slug", b.Slug).Int("attempt", attempt+1).Msg("Lost slug race, reprobing")
	}

	return nil, models.ErrSlugConflict
}

// Update applies operator edits. The slug is regenerated only when one of
// its source fields changed; SEO fields are re-synthesized unless the
// operator has ever set them explicitly.
func (s *businessService) Update(ctx context.Context, id string, in *models.BusinessInput) (*models.Business, error) {
	if verr := validation.ValidateBusinessInput(in); verr != nil {
		return nil, verr
	}

	b, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slugSourceChanged := b.Title != in.Title || b.City != in.City || b.CategoryLabel != in.CategoryLabel
	applyInput(b, in)

	if err := s.applySeo(ctx, b); err != nil {
		return nil, err
	}

	if !slugSourceChanged {
		if err := s.businessRepo.Update(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	base := seo.BaseSlug(b.Title, b.City, b.CategoryLabel)
	for attempt := 0; attempt < s.cfg.Directory.SlugMaxRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.businessRepo, base, b.ID)
		if err != nil {
			return nil, err
		}
		b.Slug = slug

		err = s.businessRepo.Update(ctx, b)
		if err == nil {
			return b, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
		s.log.Warn().Str("slug", b.Slug).Int("attempt", attempt+1).Msg("Lost slug race, reprobing")
	}

	return nil, models.ErrSlugConflict
}

// Delete removes a business
func (s *businessService) Delete(ctx context.Context, id string) error {
	if err := s.businessRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("business_id", id).Msg("Business deleted")
	return nil
}

// Get retrieves a business with its category resolved
func (s *businessService) Get(ctx context.Context, id string) (*models.BusinessWithCategory, error) {
	b, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCategory(ctx, b)
}

// GetBySlug retrieves a business by slug with its category resolved
func (s *businessService) GetBySlug(ctx context.Context, slug string) (*models.BusinessWithCategory, error) {
	b, err := s.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withCategory(ctx, b)
}

// List returns a page of businesses with categories resolved at read time.
// The category filter cannot be pushed into SQL because businesses carry
// labels, not foreign keys: when it is set, the full filtered set is
// matched in memory and paginated afterwards.
func (s *businessService) List(ctx context.Context, f *models.BusinessFilter) (*models.BusinessPage, error) {
	if verr := validation.ValidateBusinessFilter(f, s.cfg.Directory.DefaultPageSize); verr != nil {
		return nil, verr
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if f.CategoryID == "" {
		total, err := s.businessRepo.Count(ctx, f)
		if err != nil {
			return nil, err
		}
		rows, err := s.businessRepo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		return &models.BusinessPage{Rows: joinCategories(rows, categories), Total: total}, nil
	}

	unpaged := *f
	unpaged.Limit = 0
	unpaged.Offset = 0
	rows, err := s.businessRepo.List(ctx, &unpaged)
	if err != nil {
		return nil, err
	}

	var matched []*models.BusinessWithCategory
	for _, row := range joinCategories(rows, categories) {
		if row.Category != nil && row.Category.ID == f.CategoryID {
			matched = append(matched, row)
		}
	}

	total := len(matched)
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}

	return &models.BusinessPage{Rows: matched[start:end], Total: total}, nil
}

// Random returns open businesses in a fresh random order on every call
func (s *businessService) Random(ctx context.Context, limit int) ([]*models.BusinessWithCategory, error) {
	if limit <= 0 || limit > validation.MaxPageSize {
		limit = s.cfg.Directory.DefaultPageSize
	}
	rows, err := s.businessRepo.Random(ctx, limit)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return joinCategories(rows, categories), nil
}

// Featured returns featured open businesses in the stable listing order
func (s *businessService) Featured(ctx context.Context, limit int) ([]*models.BusinessWithCategory, error) {
	featured := true
	page, err := s.List(ctx, &models.BusinessFilter{Featured: &featured, Limit: limit})
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

// GenerateSlug derives and probes a unique slug without persisting anything
func (s *businessService) GenerateSlug(ctx context.Context, title, city, categoryLabel, excludeID string) (string, error) {
	base := seo.BaseSlug(title, city, categoryLabel)
	return uniqueSlug(ctx, s.businessRepo, base, excludeID)
}

// applySeo re-synthesizes the non-sticky SEO fields from the current
// snapshot. Operator-set values are never touched.
func (s *businessService) applySeo(ctx context.Context, b *models.Business) error {
	if b.SeoTitleCustom && b.SeoDescriptionCustom {
		return nil
	}

	categoryName := ""
	if b.CategoryLabel != "" {
		categories, err := s.categoryRepo.GetAll(ctx)
		if err != nil {
			return err
		}
		if matched := matching.Match(b.CategoryLabel, categories); matched != nil {
			categoryName = matched.Name
		}
	}

	meta := seo.Synthesize(b, categoryName)
	if !b.SeoTitleCustom {
		b.SeoTitle = meta.Title
	}
	if !b.SeoDescriptionCustom {
		b.SeoDescription = meta.Description
	}
	return nil
}

// applyInput copies operator-supplied fields onto the row, marking SEO
// overrides sticky when supplied.
func applyInput(b *models.Business, in *models.BusinessInput) {
	b.Title = in.Title
	b.Description = in.Description
	b.CategoryLabel = in.CategoryLabel
	b.Address = in.Address
	b.City = in.City
	b.Phone = in.Phone
	b.Email = in.Email
	b.Website = in.Website
	b.Featured = in.Featured
	b.Closed = in.Closed

	if in.SeoTitle != "" {
		b.SeoTitle = in.SeoTitle
		b.SeoTitleCustom = true
	}
	if in.SeoDescription != "" {
		b.SeoDescription = in.SeoDescription
		b.SeoDescriptionCustom = true
	}
}

// withCategory resolves a single row's category at read time
func (s *businessService) withCategory(ctx context.Context, b *models.Business) (*models.BusinessWithCategory, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return joinCategories([]*models.Business{b}, categories)[0], nil
}

// joinCategories attaches the matcher's verdict to each row
func joinCategories(rows []*models.Business, categories []*models.Category) []*models.BusinessWithCategory {
	out := make([]*models.BusinessWithCategory, 0, len(rows))
	for _, b := range rows {
		row := &models.BusinessWithCategory{Business: *b}
		if b.CategoryLabel == "" {
			row.Uncategorized = true
		} else {
			row.Category = matching.Match(b.CategoryLabel, categories)
		}
		out = append(out, row)
	}
	return out
}
