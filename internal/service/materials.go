package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/materials"
)

// catalogPoolLimit bounds how many materials the fuzzy search scores per call.
const catalogPoolLimit = 500

type MaterialRepo interface {
	Create(ctx context.Context, m materials.Material) (*materials.Material, error)
	CreateBulk(ctx context.Context, items []materials.Material) ([]materials.Material, error)
	GetByID(ctx context.Context, id uuid.UUID) (*materials.Material, error)
	GetByName(ctx context.Context, name string) (*materials.Material, error)
	Update(ctx context.Context, m materials.Material) (*materials.Material, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListAll(ctx context.Context, limit, offset int) ([]materials.Material, error)
	CountAll(ctx context.Context) (int, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]materials.Material, error)
	ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]materials.Material, error)
	SearchByName(ctx context.Context, q string, limit, offset int) ([]materials.Material, error)
}

type CategoryGetter interface {
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
}

type Materials struct {
	repo MaterialRepo
	cats CategoryGetter
	log  *slog.Logger
}

func NewMaterials(repo MaterialRepo, cats CategoryGetter, log *slog.Logger) *Materials {
	return &Materials{repo: repo, cats: cats, log: log}
}

type MaterialInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Unit        materials.Unit
}

func (s *Materials) Create(ctx context.Context, in MaterialInput) (*materials.Material, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.Validation("material name cannot be empty")
	}
	cat, err := s.cats.GetCategoryByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, errs.NotFound("Category", in.CategoryID.String())
	}
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Validation("material with name %q already exists", name)
	}
	return s.repo.Create(ctx, materials.Material{
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Unit:        in.Unit,
	})
}

func (s *Materials) CreateBulk(ctx context.Context, inputs []MaterialInput) ([]materials.Material, error) {
	if len(inputs) == 0 {
		return nil, errs.Validation("at least one material is required")
	}

	seen := make(map[string]bool, len(inputs))
	var duplicates []string
	for _, in := range inputs {
		key := strings.ToLower(strings.TrimSpace(in.Name))
		if key == "" {
			return nil, errs.Validation("material name cannot be empty")
		}
		if seen[key] {
			duplicates = append(duplicates, strings.TrimSpace(in.Name))
		}
		seen[key] = true
	}
	if len(duplicates) > 0 {
		return nil, errs.Validation("duplicate names in materials list: %s", strings.Join(duplicates, ", "))
	}

	var existing []string
	for _, in := range inputs {
		m, err := s.repo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if m != nil {
			existing = append(existing, strings.TrimSpace(in.Name))
		}
	}
	if len(existing) > 0 {
		return nil, errs.Validation("materials already exist: %s", strings.Join(existing, ", "))
	}

	items := make([]materials.Material, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, materials.Material{
			CategoryID:  in.CategoryID,
			Name:        strings.TrimSpace(in.Name),
			Description: strings.TrimSpace(in.Description),
			Unit:        in.Unit,
		})
	}
	return s.repo.CreateBulk(ctx, items)
}

func (s *Materials) Get(ctx context.Context, id uuid.UUID) (*materials.Material, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errs.NotFound("Material", id.String())
	}
	return m, nil
}

type MaterialPatch struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Unit        *materials.Unit
}

func (s *Materials) Update(ctx context.Context, id uuid.UUID, patch MaterialPatch) (*materials.Material, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		m.CategoryID = *patch.CategoryID
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errs.Validation("material name cannot be empty")
		}
		m.Name = name
	}
	if patch.Description != nil {
		m.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Unit != nil {
		m.Unit = *patch.Unit
	}
	updated, err := s.repo.Update(ctx, *m)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.NotFound("Material", id.String())
	}
	return updated, nil
}

func (s *Materials) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("Material", id.String())
	}
	return nil
}

func (s *Materials) List(ctx context.Context, limit, offset int) ([]materials.Material, int, error) {
	items, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Materials) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]materials.Material, error) {
	return s.repo.ListByCategory(ctx, categoryID, limit, offset)
}

func (s *Materials) ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]materials.Material, error) {
	return s.repo.ListByConstruction(ctx, constructionID, limit, offset)
}

// FilterByName is the plain substring filter used by the list endpoint.
func (s *Materials) FilterByName(ctx context.Context, q string, limit, offset int) ([]materials.Material, error) {
	return s.repo.SearchByName(ctx, q, limit, offset)
}

// Search ranks the catalog pool against query with the loose search threshold
// and paginates the ranked result.
func (s *Materials) Search(ctx context.Context, query string, categoryID *uuid.UUID, page, size int) ([]materials.Suggestion, int, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, errs.Validation("search query cannot be empty")
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	pool, err := s.repo.ListAll(ctx, catalogPoolLimit, 0)
	if err != nil {
		return nil, 0, err
	}
	if categoryID != nil {
		filtered := pool[:0]
		for _, m := range pool {
			if m.CategoryID == *categoryID {
				filtered = append(filtered, m)
			}
		}
		pool = filtered
	}

	ranked := materials.FuzzySearch(query, pool)
	total := len(ranked)

	start := (page - 1) * size
	if start >= total {
		return nil, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return ranked[start:end], total, nil
}

// FindOrCreateByName resolves a material by normalized name, creating it when
// no exact match exists. New materials are created on first reference.
func (s *Materials) FindOrCreateByName(ctx context.Context, name string, categoryID uuid.UUID, unit materials.Unit) (*materials.Material, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, errs.Validation("material name cannot be empty")
	}
	existing, err := s.repo.GetByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.repo.Create(ctx, materials.Material{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
		Unit:       unit,
	})
}
