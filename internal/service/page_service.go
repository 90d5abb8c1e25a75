package service

import (
	"context"

	"github.com/business-directory-api/internal/config"
	"github.com/business-directory-api/internal/database"
	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/business-directory-api/internal/seo"
	"github.com/business-directory-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// pageService is the concrete implementation of PageService. Pages share
// the slug and sticky-SEO pipeline with businesses, minus the city and
// category segments.
type pageService struct {
	pageRepo repository.PageRepository
	cfg      *config.Config
	log      zerolog.Logger
}

// newPageService creates a new PageService
func newPageService(pageRepo repository.PageRepository, cfg *config.Config, log zerolog.Logger) *pageService {
	return &pageService{
		pageRepo: pageRepo,
		cfg:      cfg,
		log:      log.With().Str("service", "page").Logger(),
	}
}

// Create adds a page with a unique slug and derived SEO fields
func (s *pageService) Create(ctx context.Context, in *models.PageInput) (*models.Page, error) {
	if verr := validation.ValidatePageInput(in); verr != nil {
		return nil, verr
	}

	p := &models.Page{ID: uuid.NewString()}
	applyPageInput(p, in)
	synthesizePageSeo(p)

	base := seo.Slugify(p.Title)
	if base == "" {
		base = seo.FallbackSlug
	}

	for attempt := 0; attempt < s.cfg.Directory.SlugMaxRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.pageRepo, base, "")
		if err != nil {
			return nil, err
		}
		p.Slug = slug

		err = s.pageRepo.Create(ctx, p)
		if err == nil {
			s.log.Info().Str("page_id", p.ID).Str("slug", p.Slug).Msg("Page created")
			return p, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
	}

	return nil, models.ErrSlugConflict
}

// Update applies operator edits, regenerating the slug only on title change
func (s *pageService) Update(ctx context.Context, id string, in *models.PageInput) (*models.Page, error) {
	if verr := validation.ValidatePageInput(in); verr != nil {
		return nil, verr
	}

	p, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	titleChanged := p.Title != in.Title
	applyPageInput(p, in)
	synthesizePageSeo(p)

	if !titleChanged {
		if err := s.pageRepo.Update(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	base := seo.Slugify(p.Title)
	if base == "" {
		base = seo.FallbackSlug
	}

	for attempt := 0; attempt < s.cfg.Directory.SlugMaxRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.pageRepo, base, p.ID)
		if err != nil {
			return nil, err
		}
		p.Slug = slug

		err = s.pageRepo.Update(ctx, p)
		if err == nil {
			return p, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
	}

	return nil, models.ErrSlugConflict
}

// Delete removes a page
func (s *pageService) Delete(ctx context.Context, id string) error {
	return s.pageRepo.Delete(ctx, id)
}

// Get retrieves a page by ID
func (s *pageService) Get(ctx context.Context, id string) (*models.Page, error) {
	return s.pageRepo.GetByID(ctx, id)
}

// GetBySlug retrieves a page by slug
func (s *pageService) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	return s.pageRepo.GetBySlug(ctx, slug)
}

// List retrieves all pages
func (s *pageService) List(ctx context.Context) ([]*models.Page, error) {
	return s.pageRepo.GetAll(ctx)
}

func applyPageInput(p *models.Page, in *models.PageInput) {
	p.Title = in.Title
	p.Body = in.Body
	p.Published = in.Published

	if in.SeoTitle != "" {
		p.SeoTitle = in.SeoTitle
		p.SeoTitleCustom = true
	}
	if in.SeoDescription != "" {
		p.SeoDescription = in.SeoDescription
		p.SeoDescriptionCustom = true
	}
}

func synthesizePageSeo(p *models.Page) {
	if !p.SeoTitleCustom {
		p.SeoTitle = seo.Truncate(p.Title, seo.TitleBudget)
	}
	if !p.SeoDescriptionCustom {
		p.SeoDescription = seo.Truncate(p.Body, seo.DescriptionBudget)
	}
}
