package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, constructionID uuid.UUID, fileName string) (*Job, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO analysis_jobs (construction_id, file_name, status)
		VALUES ($1,$2,$3)
		RETURNING id, construction_id, file_name, status, error_message, created_at, completed_at
	`, constructionID, fileName, string(StatusPending))
	return scanJob(row)
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, construction_id, file_name, status, error_message, created_at, completed_at
		FROM analysis_jobs WHERE id=$1
	`, id)
	j, err := scanJob(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return j, err
}

func (r *Repo) Update(ctx context.Context, j Job) (*Job, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE analysis_jobs
		SET status=$2, error_message=$3, completed_at=$4
		WHERE id=$1
		RETURNING id, construction_id, file_name, status, error_message, created_at, completed_at
	`, j.ID, string(j.Status), j.ErrorMessage, j.CompletedAt)
	updated, err := scanJob(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return updated, err
}

func (r *Repo) ListByConstruction(ctx context.Context, constructionID uuid.UUID, limit, offset int) ([]Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, construction_id, file_name, status, error_message, created_at, completed_at
		FROM analysis_jobs
		WHERE construction_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, constructionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	var status string
	// error_message tolerates NULL so rows written before the column's
	// NOT NULL default still scan.
	var errMsg pgtype.Text
	if err := row.Scan(&j.ID, &j.ConstructionID, &j.FileName, &status, &errMsg, &j.CreatedAt, &j.CompletedAt); err != nil {
		return nil, err
	}
	j.Status = Status(status)
	j.ErrorMessage = errMsg.String
	return &j, nil
}
