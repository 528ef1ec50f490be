package materials

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, m Material) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO materials (category_id, name, description, unit)
		VALUES ($1,$2,$3,$4)
		RETURNING id, category_id, name, description, unit, created_at
	`, m.CategoryID, m.Name, m.Description, string(m.Unit))
	return scanMaterial(row)
}

func (r *Repo) CreateBulk(ctx context.Context, items []Material) ([]Material, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]Material, 0, len(items))
	for _, m := range items {
		row := tx.QueryRow(ctx, `
			INSERT INTO materials (category_id, name, description, unit)
			VALUES ($1,$2,$3,$4)
			RETURNING id, category_id, name, description, unit, created_at
		`, m.CategoryID, m.Name, m.Description, string(m.Unit))
		created, err := scanMaterial(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *created)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, category_id, name, description, unit, created_at
		FROM materials WHERE id = $1
	`, id)
	m, err := scanMaterial(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// GetByName returns the material whose name equals name case-insensitively,
// or (nil, nil) when there is none.
func (r *Repo) GetByName(ctx context.Context, name string) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, category_id, name, description, unit, created_at
		FROM materials WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`, strings.TrimSpace(name))
	m, err := scanMaterial(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return m, err
}

func (r *Repo) Update(ctx context.Context, m Material) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE materials
		SET category_id=$2, name=$3, description=$4, unit=$5
		WHERE id=$1
		RETURNING id, category_id, name, description, unit, created_at
	`, m.ID, m.CategoryID, m.Name, m.Description, string(m.Unit))
	updated, err := scanMaterial(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return updated, err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListAll(ctx context.Context, limit, offset int) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, description, unit, created_at
		FROM materials
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMaterials(rows)
}

func (r *Repo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM materials`).Scan(&n)
	return n, err
}

func (r *Repo) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, description, unit, created_at
		FROM materials
		WHERE category_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMaterials(rows)
}

// SearchByName is the plain substring search; fuzzy ranking happens in the
// service layer on top of a catalog pool.
func (r *Repo) SearchByName(ctx context.Context, q string, limit, offset int) ([]Material, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, description, unit, created_at
		FROM materials
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, "%"+q+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMaterials(rows)
}

// ListByConstruction returns distinct materials present on a construction's
// storage items.
func (r *Repo) ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT m.id, m.category_id, m.name, m.description, m.unit, m.created_at
		FROM materials m
		JOIN storage_items si ON si.material_id = m.id
		WHERE si.construction_id = $1
		ORDER BY m.name
		LIMIT $2 OFFSET $3
	`, constructionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMaterials(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*Material, error) {
	var m Material
	if err := row.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Unit, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMaterials(rows pgx.Rows) ([]Material, error) {
	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Unit, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
