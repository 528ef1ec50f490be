package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/inventory"
	"github.com/Spok95/site-inventory/internal/infra/metrics"
)

type ItemRepo interface {
	Upsert(ctx context.Context, item inventory.Item) (*inventory.Item, error)
	UpsertBulk(ctx context.Context, items []inventory.Item) ([]inventory.Item, error)
	GetByIDs(ctx context.Context, constructionID, materialID uuid.UUID) (*inventory.Item, error)
	SetQuantity(ctx context.Context, constructionID, materialID uuid.UUID, quantity decimal.Decimal) (*inventory.Item, error)
	Delete(ctx context.Context, constructionID, materialID uuid.UUID) (bool, error)
	ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]inventory.Item, error)
	ListByMaterial(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]inventory.Item, error)
	MaterialsByConstruction(ctx context.Context, constructionID uuid.UUID) ([]inventory.MaterialRow, error)
}

// Stock is the storage-item upsert engine: accumulate-or-create per
// (construction, material) pair, with validation ahead of any write.
type Stock struct {
	repo ItemRepo
	log  *slog.Logger
}

func NewStock(repo ItemRepo, log *slog.Logger) *Stock {
	return &Stock{repo: repo, log: log}
}

// Upsert adds delta to the pair's stored quantity, creating the record when
// absent. Negative deltas are rejected before anything is written.
func (s *Stock) Upsert(ctx context.Context, constructionID, materialID uuid.UUID, delta decimal.Decimal) (*inventory.Item, error) {
	if err := validateItem(constructionID, materialID, delta); err != nil {
		return nil, err
	}
	item, err := s.repo.Upsert(ctx, inventory.Item{
		ConstructionID: constructionID,
		MaterialID:     materialID,
		Quantity:       delta,
	})
	if err != nil {
		return nil, err
	}
	metrics.StockUpserts.Inc()
	return item, nil
}

// UpsertBulk applies Upsert item by item, results in input order. Every item's
// construction id must match constructionID; any mismatch rejects the whole
// batch before a single write.
func (s *Stock) UpsertBulk(ctx context.Context, constructionID uuid.UUID, items []inventory.Item) ([]inventory.Item, error) {
	if len(items) == 0 {
		return nil, errs.Validation("at least one storage item is required")
	}
	for _, item := range items {
		if item.ConstructionID != constructionID {
			return nil, errs.Validation(
				"storage item construction_id %s does not match %s",
				item.ConstructionID, constructionID,
			)
		}
		if err := validateItem(item.ConstructionID, item.MaterialID, item.Quantity); err != nil {
			return nil, err
		}
	}
	out, err := s.repo.UpsertBulk(ctx, items)
	if err != nil {
		return nil, err
	}
	metrics.StockUpserts.Add(float64(len(items)))
	return out, nil
}

func (s *Stock) Get(ctx context.Context, constructionID, materialID uuid.UUID) (*inventory.Item, error) {
	item, err := s.repo.GetByIDs(ctx, constructionID, materialID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errs.NotFound("StorageItem", pairID(constructionID, materialID))
	}
	return item, nil
}

// SetQuantity overwrites the stored quantity with an absolute value.
func (s *Stock) SetQuantity(ctx context.Context, constructionID, materialID uuid.UUID, quantity decimal.Decimal) (*inventory.Item, error) {
	if quantity.IsNegative() {
		return nil, errs.Validation("quantity value must be non-negative")
	}
	item, err := s.repo.SetQuantity(ctx, constructionID, materialID, quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errs.NotFound("StorageItem", pairID(constructionID, materialID))
	}
	return item, nil
}

func (s *Stock) Delete(ctx context.Context, constructionID, materialID uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, constructionID, materialID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("StorageItem", pairID(constructionID, materialID))
	}
	return nil
}

func (s *Stock) ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]inventory.Item, error) {
	return s.repo.ListByConstruction(ctx, constructionID, limit, offset)
}

func (s *Stock) ListByMaterial(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]inventory.Item, error) {
	return s.repo.ListByMaterial(ctx, materialID, limit, offset)
}

func (s *Stock) MaterialsByConstruction(ctx context.Context, constructionID uuid.UUID) ([]inventory.MaterialRow, error) {
	return s.repo.MaterialsByConstruction(ctx, constructionID)
}

func validateItem(constructionID, materialID uuid.UUID, quantity decimal.Decimal) error {
	if constructionID == uuid.Nil {
		return errs.Validation("construction ID is required for storage item")
	}
	if materialID == uuid.Nil {
		return errs.Validation("material ID is required for storage item")
	}
	if quantity.IsNegative() {
		return errs.Validation("quantity value must be non-negative")
	}
	return nil
}

func pairID(constructionID, materialID uuid.UUID) string {
	return fmt.Sprintf("construction_id=%s, material_id=%s", constructionID, materialID)
}
