package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/business-directory-api/internal/models"
	"github.com/lib/pq"
)

// UniqueViolation fabricates the error lib/pq returns when an insert loses
// a unique-index race, for exercising the retry paths.
func UniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

// MockBusinessRepository is a mock implementation of BusinessRepository
type MockBusinessRepository struct {
	Businesses map[string]*models.Business
	SlugTaken  map[string]string // slug -> business id
	CreateFunc func(ctx context.Context, b *models.Business) error
	CreateErr  error
}

func NewMockBusinessRepository() *MockBusinessRepository {
	return &MockBusinessRepository{
		Businesses: make(map[string]*models.Business),
		SlugTaken:  make(map[string]string),
	}
}

func (m *MockBusinessRepository) Create(ctx context.Context, b *models.Business) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, b); err != nil {
			return err
		}
	}
	if m.CreateErr != nil {
		err := m.CreateErr
		m.CreateErr = nil
		return err
	}
	if _, taken := m.SlugTaken[b.Slug]; taken {
		return UniqueViolation("businesses_slug_key")
	}
	cp := *b
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.Businesses[b.ID] = &cp
	m.SlugTaken[b.Slug] = b.ID
	return nil
}

func (m *MockBusinessRepository) Update(ctx context.Context, b *models.Business) error {
	existing, ok := m.Businesses[b.ID]
	if !ok {
		return models.ErrNotFound
	}
	if owner, taken := m.SlugTaken[b.Slug]; taken && owner != b.ID {
		return UniqueViolation("businesses_slug_key")
	}
	delete(m.SlugTaken, existing.Slug)
	cp := *b
	cp.UpdatedAt = time.Now()
	m.Businesses[b.ID] = &cp
	m.SlugTaken[b.Slug] = b.ID
	return nil
}

func (m *MockBusinessRepository) Delete(ctx context.Context, id string) error {
	b, ok := m.Businesses[id]
	if !ok {
		return models.ErrNotFound
	}
	delete(m.SlugTaken, b.Slug)
	delete(m.Businesses, id)
	return nil
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id string) (*models.Business, error) {
	b, ok := m.Businesses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MockBusinessRepository) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	id, ok := m.SlugTaken[slug]
	if !ok {
		return nil, models.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MockBusinessRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	owner, taken := m.SlugTaken[slug]
	if !taken {
		return false, nil
	}
	if excludeID != "" && owner == excludeID {
		return false, nil
	}
	return true, nil
}

// List mirrors the SQL ordering: featured first, then title, then id.
func (m *MockBusinessRepository) List(ctx context.Context, f *models.BusinessFilter) ([]*models.Business, error) {
	var out []*models.Business
	for _, b := range m.Businesses {
		if matchesFilter(b, f) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MockBusinessRepository) Count(ctx context.Context, f *models.BusinessFilter) (int, error) {
	count := 0
	for _, b := range m.Businesses {
		if matchesFilter(b, f) {
			count++
		}
	}
	return count, nil
}

func (m *MockBusinessRepository) Random(ctx context.Context, limit int) ([]*models.Business, error) {
	var out []*models.Business
	for _, b := range m.Businesses {
		if b.Closed {
			continue
		}
		cp := *b
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockBusinessRepository) TotalCount(ctx context.Context) (int, error) {
	return len(m.Businesses), nil
}

func matchesFilter(b *models.Business, f *models.BusinessFilter) bool {
	if !f.IncludeClosed && b.Closed {
		return false
	}
	if f.City != "" && !strings.EqualFold(b.City, f.City) {
		return false
	}
	if f.Featured != nil && b.Featured != *f.Featured {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(b.Title), term) &&
			!strings.Contains(strings.ToLower(b.Description), term) &&
			!strings.Contains(strings.ToLower(b.CategoryLabel), term) {
			return false
		}
	}
	return true
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*models.Category
	SlugTaken  map[string]string
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*models.Category),
		SlugTaken:  make(map[string]string),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if _, taken := m.SlugTaken[c.Slug]; taken {
		return UniqueViolation("categories_slug_key")
	}
	cp := *c
	m.Categories[c.ID] = &cp
	m.SlugTaken[c.Slug] = c.ID
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	existing, ok := m.Categories[c.ID]
	if !ok {
		return models.ErrNotFound
	}
	delete(m.SlugTaken, existing.Slug)
	cp := *c
	m.Categories[c.ID] = &cp
	m.SlugTaken[c.Slug] = c.ID
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	c, ok := m.Categories[id]
	if !ok {
		return models.ErrNotFound
	}
	delete(m.SlugTaken, c.Slug)
	delete(m.Categories, id)
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, ok := m.Categories[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// GetAll returns categories ordered by id, matching the SQL ordering
func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.Categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	owner, taken := m.SlugTaken[slug]
	if !taken {
		return false, nil
	}
	if excludeID != "" && owner == excludeID {
		return false, nil
	}
	return true, nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Categories), nil
}

// MockClaimRepository is a mock implementation of ClaimRepository. It
// reproduces the partial unique index: at most one pending or approved
// claim per (business, user) pair.
type MockClaimRepository struct {
	Claims map[string]*models.OwnershipClaim
}

func NewMockClaimRepository() *MockClaimRepository {
	return &MockClaimRepository{
		Claims: make(map[string]*models.OwnershipClaim),
	}
}

func (m *MockClaimRepository) Create(ctx context.Context, c *models.OwnershipClaim) error {
	for _, existing := range m.Claims {
		if existing.BusinessID == c.BusinessID && existing.UserID == c.UserID &&
			(existing.Status == models.ClaimStatusPending || existing.Status == models.ClaimStatusApproved) {
			return models.ErrDuplicateClaim
		}
	}
	cp := *c
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.Claims[c.ID] = &cp
	return nil
}

func (m *MockClaimRepository) GetByID(ctx context.Context, id string) (*models.OwnershipClaim, error) {
	c, ok := m.Claims[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ApprovedForBusiness returns approved claims newest-reviewed first, ties
// broken by id, matching the SQL ordering.
func (m *MockClaimRepository) ApprovedForBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error) {
	var out []*models.OwnershipClaim
	for _, c := range m.Claims {
		if c.BusinessID == businessID && c.Status == models.ClaimStatusApproved {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].ReviewedAt, out[j].ReviewedAt
		switch {
		case ri != nil && rj != nil && !ri.Equal(*rj):
			return ri.After(*rj)
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockClaimRepository) ListByBusiness(ctx context.Context, businessID string) ([]*models.OwnershipClaim, error) {
	var out []*models.OwnershipClaim
	for _, c := range m.Claims {
		if c.BusinessID == businessID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockClaimRepository) ListPending(ctx context.Context) ([]*models.OwnershipClaim, error) {
	var out []*models.OwnershipClaim
	for _, c := range m.Claims {
		if c.Status == models.ClaimStatusPending {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockClaimRepository) Review(ctx context.Context, claimID string, status models.ClaimStatus, reviewerID, adminMessage string) (*models.OwnershipClaim, error) {
	c, ok := m.Claims[claimID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if c.Status != models.ClaimStatusPending {
		return nil, models.ErrClaimReviewed
	}
	now := time.Now()
	c.Status = status
	c.AdminMessage = adminMessage
	c.ReviewedBy = reviewerID
	c.ReviewedAt = &now
	c.UpdatedAt = now
	cp := *c
	return &cp, nil
}

// MockLeadRepository is a mock implementation of LeadRepository. It shares
// the claim store so routing resolves ownership exactly the way the SQL
// subquery does.
type MockLeadRepository struct {
	Leads  map[string]*models.Lead
	Claims *MockClaimRepository
}

func NewMockLeadRepository(claims *MockClaimRepository) *MockLeadRepository {
	return &MockLeadRepository{
		Leads:  make(map[string]*models.Lead),
		Claims: claims,
	}
}

func (m *MockLeadRepository) Create(ctx context.Context, l *models.Lead) error {
	cp := *l
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.Leads[l.ID] = &cp
	return nil
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	l, ok := m.Leads[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *MockLeadRepository) ListForAdmin(ctx context.Context) ([]*models.Lead, error) {
	var out []*models.Lead
	for _, l := range m.Leads {
		owner, _ := m.resolveOwner(ctx, l.BusinessID)
		if owner == "" {
			cp := *l
			out = append(out, &cp)
		}
	}
	sortLeads(out)
	return out, nil
}

func (m *MockLeadRepository) ListForOwner(ctx context.Context, userID string) ([]*models.Lead, error) {
	var out []*models.Lead
	for _, l := range m.Leads {
		owner, _ := m.resolveOwner(ctx, l.BusinessID)
		if owner != "" && owner == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sortLeads(out)
	return out, nil
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	l, ok := m.Leads[id]
	if !ok {
		return models.ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}

func (m *MockLeadRepository) Count(ctx context.Context) (int, error) {
	return len(m.Leads), nil
}

func (m *MockLeadRepository) resolveOwner(ctx context.Context, businessID string) (string, error) {
	approved, err := m.Claims.ApprovedForBusiness(ctx, businessID)
	if err != nil || len(approved) == 0 {
		return "", err
	}
	return approved[0].UserID, nil
}

func sortLeads(leads []*models.Lead) {
	sort.Slice(leads, func(i, j int) bool {
		if !leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].CreatedAt.After(leads[j].CreatedAt)
		}
		return leads[i].ID < leads[j].ID
	})
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.Users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	u, ok := m.Users[id]
	if !ok {
		return models.ErrNotFound
	}
	if u.Role == models.RoleAdmin && u.Active {
		remaining := 0
		for _, other := range m.Users {
			if other.ID != id && other.Role == models.RoleAdmin && other.Active {
				remaining++
			}
		}
		if remaining == 0 {
			return models.ErrLastAdmin
		}
	}
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockPageRepository is a mock implementation of PageRepository
type MockPageRepository struct {
	Pages     map[string]*models.Page
	SlugTaken map[string]string
}

func NewMockPageRepository() *MockPageRepository {
	return &MockPageRepository{
		Pages:     make(map[string]*models.Page),
		SlugTaken: make(map[string]string),
	}
}

func (m *MockPageRepository) Create(ctx context.Context, p *models.Page) error {
	if _, taken := m.SlugTaken[p.Slug]; taken {
		return UniqueViolation("pages_slug_key")
	}
	cp := *p
	m.Pages[p.ID] = &cp
	m.SlugTaken[p.Slug] = p.ID
	return nil
}

func (m *MockPageRepository) Update(ctx context.Context, p *models.Page) error {
	existing, ok := m.Pages[p.ID]
	if !ok {
		return models.ErrNotFound
	}
	if owner, taken := m.SlugTaken[p.Slug]; taken && owner != p.ID {
		return UniqueViolation("pages_slug_key")
	}
	delete(m.SlugTaken, existing.Slug)
	cp := *p
	m.Pages[p.ID] = &cp
	m.SlugTaken[p.Slug] = p.ID
	return nil
}

func (m *MockPageRepository) Delete(ctx context.Context, id string) error {
	p, ok := m.Pages[id]
	if !ok {
		return models.ErrNotFound
	}
	delete(m.SlugTaken, p.Slug)
	delete(m.Pages, id)
	return nil
}

func (m *MockPageRepository) GetByID(ctx context.Context, id string) (*models.Page, error) {
	p, ok := m.Pages[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockPageRepository) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	id, ok := m.SlugTaken[slug]
	if !ok {
		return nil, models.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MockPageRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	owner, taken := m.SlugTaken[slug]
	if !taken {
		return false, nil
	}
	if excludeID != "" && owner == excludeID {
		return false, nil
	}
	return true, nil
}

func (m *MockPageRepository) GetAll(ctx context.Context) ([]*models.Page, error) {
	var out []*models.Page
	for _, p := range m.Pages {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
