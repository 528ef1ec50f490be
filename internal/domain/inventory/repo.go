package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Upsert accumulates delta into the (construction, material) row, creating it
// when absent. The increment happens inside a single statement so concurrent
// upserts to the same pair cannot lose an update.
func (r *Repo) Upsert(ctx context.Context, item Item) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO storage_items (construction_id, material_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (construction_id, material_id)
		DO UPDATE SET quantity = storage_items.quantity + EXCLUDED.quantity
		RETURNING construction_id, material_id, quantity, created_at
	`, item.ConstructionID, item.MaterialID, item.Quantity)
	return scanItem(row)
}

// UpsertBulk applies Upsert per item inside one transaction and returns
// results in input order.
func (r *Repo) UpsertBulk(ctx context.Context, items []Item) ([]Item, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]Item, 0, len(items))
	for _, item := range items {
		row := tx.QueryRow(ctx, `
			INSERT INTO storage_items (construction_id, material_id, quantity)
			VALUES ($1,$2,$3)
			ON CONFLICT (construction_id, material_id)
			DO UPDATE SET quantity = storage_items.quantity + EXCLUDED.quantity
			RETURNING construction_id, material_id, quantity, created_at
		`, item.ConstructionID, item.MaterialID, item.Quantity)
		upserted, err := scanItem(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *upserted)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByIDs(ctx context.Context, constructionID, materialID uuid.UUID) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT construction_id, material_id, quantity, created_at
		FROM storage_items
		WHERE construction_id=$1 AND material_id=$2
	`, constructionID, materialID)
	item, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return item, err
}

// SetQuantity overwrites the stored quantity, unlike Upsert which accumulates.
func (r *Repo) SetQuantity(ctx context.Context, constructionID, materialID uuid.UUID, quantity decimal.Decimal) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE storage_items SET quantity=$3
		WHERE construction_id=$1 AND material_id=$2
		RETURNING construction_id, material_id, quantity, created_at
	`, constructionID, materialID, quantity)
	item, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return item, err
}

func (r *Repo) Delete(ctx context.Context, constructionID, materialID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM storage_items WHERE construction_id=$1 AND material_id=$2
	`, constructionID, materialID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT construction_id, material_id, quantity, created_at
		FROM storage_items
		WHERE construction_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, constructionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *Repo) ListByMaterial(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT construction_id, material_id, quantity, created_at
		FROM storage_items
		WHERE material_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, materialID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// MaterialsByConstruction returns the construction's inventory joined with
// material and category details.
func (r *Repo) MaterialsByConstruction(ctx context.Context, constructionID uuid.UUID) ([]MaterialRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT si.construction_id, si.material_id, m.name, COALESCE(c.name,''), m.description, m.unit, si.quantity, si.created_at
		FROM storage_items si
		JOIN materials m ON m.id = si.material_id
		LEFT JOIN categories c ON c.id = m.category_id
		WHERE si.construction_id=$1
		ORDER BY m.name
	`, constructionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MaterialRow
	for rows.Next() {
		var m MaterialRow
		if err := rows.Scan(&m.ConstructionID, &m.MaterialID, &m.Name, &m.Category, &m.Description, &m.Unit, &m.Quantity, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	if err := row.Scan(&item.ConstructionID, &item.MaterialID, &item.Quantity, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ConstructionID, &item.MaterialID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
