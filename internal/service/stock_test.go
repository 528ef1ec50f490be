package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/inventory"
)

type itemKey struct {
	construction uuid.UUID
	material     uuid.UUID
}

// fakeItemRepo accumulates quantities in memory with the same upsert
// semantics as the SQL ON CONFLICT statement.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[itemKey]inventory.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[itemKey]inventory.Item)}
}

func (f *fakeItemRepo) Upsert(_ context.Context, item inventory.Item) (*inventory.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upsertLocked(item), nil
}

func (f *fakeItemRepo) upsertLocked(item inventory.Item) *inventory.Item {
	key := itemKey{item.ConstructionID, item.MaterialID}
	if existing, ok := f.items[key]; ok {
		existing.Quantity = existing.Quantity.Add(item.Quantity)
		f.items[key] = existing
		return &existing
	}
	item.CreatedAt = time.Now()
	f.items[key] = item
	return &item
}

func (f *fakeItemRepo) UpsertBulk(_ context.Context, items []inventory.Item) ([]inventory.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]inventory.Item, 0, len(items))
	for _, it := range items {
		out = append(out, *f.upsertLocked(it))
	}
	return out, nil
}

func (f *fakeItemRepo) GetByIDs(_ context.Context, constructionID, materialID uuid.UUID) (*inventory.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.items[itemKey{constructionID, materialID}]; ok {
		return &it, nil
	}
	return nil, nil
}

func (f *fakeItemRepo) SetQuantity(_ context.Context, constructionID, materialID uuid.UUID, quantity decimal.Decimal) (*inventory.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := itemKey{constructionID, materialID}
	it, ok := f.items[key]
	if !ok {
		return nil, nil
	}
	it.Quantity = quantity
	f.items[key] = it
	return &it, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, constructionID, materialID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := itemKey{constructionID, materialID}
	if _, ok := f.items[key]; !ok {
		return false, nil
	}
	delete(f.items, key)
	return true, nil
}

func (f *fakeItemRepo) ListByConstruction(_ context.Context, constructionID uuid.UUID, _, _ int) ([]inventory.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inventory.Item
	for key, it := range f.items {
		if key.construction == constructionID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) ListByMaterial(_ context.Context, materialID uuid.UUID, _, _ int) ([]inventory.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inventory.Item
	for key, it := range f.items {
		if key.material == materialID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) MaterialsByConstruction(_ context.Context, _ uuid.UUID) ([]inventory.MaterialRow, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestStockUpsertAccumulates(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewStock(repo, testLogger())
	ctx := context.Background()

	constructionID, materialID := uuid.New(), uuid.New()

	item, err := svc.Upsert(ctx, constructionID, materialID, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))

	item, err = svc.Upsert(ctx, constructionID, materialID, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(15)), "got %s", item.Quantity)
}

func TestStockUpsertRejectsNegative(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewStock(repo, testLogger())
	ctx := context.Background()

	constructionID, materialID := uuid.New(), uuid.New()
	_, err := svc.Upsert(ctx, constructionID, materialID, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, constructionID, materialID, decimal.NewFromInt(-3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))

	stored, err := svc.Get(ctx, constructionID, materialID)
	require.NoError(t, err)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(10)), "rejected write must not touch state")
}

func TestStockUpsertRequiresIDs(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, uuid.Nil, uuid.New(), decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = svc.Upsert(ctx, uuid.New(), uuid.Nil, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestStockUpsertZeroDeltaCreatesRow(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	ctx := context.Background()

	constructionID, materialID := uuid.New(), uuid.New()
	item, err := svc.Upsert(ctx, constructionID, materialID, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, item.Quantity.IsZero())
}

func TestStockUpsertBulkMismatchWritesNothing(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewStock(repo, testLogger())
	ctx := context.Background()

	constructionID := uuid.New()
	items := []inventory.Item{
		{ConstructionID: constructionID, MaterialID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		{ConstructionID: uuid.New(), MaterialID: uuid.New(), Quantity: decimal.NewFromInt(2)},
	}
	_, err := svc.UpsertBulk(ctx, constructionID, items)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Empty(t, repo.items, "mismatch must reject the batch before any write")
}

func TestStockUpsertBulkEmpty(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	_, err := svc.UpsertBulk(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestStockUpsertBulkPreservesOrder(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	ctx := context.Background()

	constructionID := uuid.New()
	first, second := uuid.New(), uuid.New()
	items := []inventory.Item{
		{ConstructionID: constructionID, MaterialID: first, Quantity: decimal.NewFromInt(3)},
		{ConstructionID: constructionID, MaterialID: second, Quantity: decimal.NewFromInt(7)},
	}
	out, err := svc.UpsertBulk(ctx, constructionID, items)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, first, out[0].MaterialID)
	assert.Equal(t, second, out[1].MaterialID)
}

func TestStockConcurrentUpserts(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewStock(repo, testLogger())
	ctx := context.Background()

	constructionID, materialID := uuid.New(), uuid.New()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Upsert(ctx, constructionID, materialID, decimal.NewFromInt(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	item, err := svc.Get(ctx, constructionID, materialID)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(n)), "got %s", item.Quantity)
}

func TestStockSetQuantityOverwrites(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	ctx := context.Background()

	constructionID, materialID := uuid.New(), uuid.New()
	_, err := svc.Upsert(ctx, constructionID, materialID, decimal.NewFromInt(10))
	require.NoError(t, err)

	item, err := svc.SetQuantity(ctx, constructionID, materialID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(4)))
}

func TestStockSetQuantityMissingPair(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	_, err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestStockDeleteMissingPair(t *testing.T) {
	svc := NewStock(newFakeItemRepo(), testLogger())
	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
