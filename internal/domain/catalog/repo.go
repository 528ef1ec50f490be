package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Categories */

func (r *Repo) CreateCategory(ctx context.Context, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at
	`, name)
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		// Already exists, return the existing one.
		return r.GetCategoryByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM categories WHERE id=$1
	`, id)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM categories WHERE name=$1
	`, name)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) UpdateCategoryName(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET name=$2 WHERE id=$1
		RETURNING id, name, created_at
	`, id, name)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// DeleteCategory removes the category; materials cascade in the schema.
func (r *Repo) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

/* Constructions */

func (r *Repo) CreateConstruction(ctx context.Context, c Construction) (*Construction, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO constructions (name, description, address, start_date, status, img_url)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, name, description, address, start_date, status, img_url, created_at
	`, c.Name, c.Description, c.Address, c.StartDate, string(c.Status), c.ImgURL)
	return scanConstruction(row)
}

func (r *Repo) GetConstructionByID(ctx context.Context, id uuid.UUID) (*Construction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, address, start_date, status, img_url, created_at
		FROM constructions WHERE id=$1
	`, id)
	c, err := scanConstruction(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *Repo) UpdateConstruction(ctx context.Context, c Construction) (*Construction, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE constructions
		SET name=$2, description=$3, address=$4, start_date=$5, status=$6, img_url=$7
		WHERE id=$1
		RETURNING id, name, description, address, start_date, status, img_url, created_at
	`, c.ID, c.Name, c.Description, c.Address, c.StartDate, string(c.Status), c.ImgURL)
	updated, err := scanConstruction(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return updated, err
}

func (r *Repo) DeleteConstruction(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM constructions WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListConstructions(ctx context.Context, limit, offset int) ([]Construction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, address, start_date, status, img_url, created_at
		FROM constructions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Construction
	for rows.Next() {
		var c Construction
		var status string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &c.StartDate, &status, &c.ImgURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Status = ConstructionStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CountConstructions(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM constructions`).Scan(&n)
	return n, err
}

/* Storages */

func (r *Repo) CreateStorage(ctx context.Context, constructionID uuid.UUID, name string) (*Storage, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO storages (construction_id, name) VALUES ($1,$2)
		RETURNING id, construction_id, name, created_at
	`, constructionID, name)
	var s Storage
	if err := row.Scan(&s.ID, &s.ConstructionID, &s.Name, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) GetStorageByID(ctx context.Context, id uuid.UUID) (*Storage, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, construction_id, name, created_at FROM storages WHERE id=$1
	`, id)
	var s Storage
	if err := row.Scan(&s.ID, &s.ConstructionID, &s.Name, &s.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) UpdateStorageName(ctx context.Context, id uuid.UUID, name string) (*Storage, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE storages SET name=$2 WHERE id=$1
		RETURNING id, construction_id, name, created_at
	`, id, name)
	var s Storage
	if err := row.Scan(&s.ID, &s.ConstructionID, &s.Name, &s.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) DeleteStorage(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM storages WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListStoragesByConstruction(ctx context.Context, constructionID uuid.UUID) ([]Storage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, construction_id, name, created_at
		FROM storages
		WHERE construction_id=$1
		ORDER BY name
	`, constructionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Storage
	for rows.Next() {
		var s Storage
		if err := rows.Scan(&s.ID, &s.ConstructionID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanConstruction(row pgx.Row) (*Construction, error) {
	var c Construction
	var status string
	var startDate *time.Time
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &startDate, &status, &c.ImgURL, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Status = ConstructionStatus(status)
	c.StartDate = startDate
	return &c, nil
}
