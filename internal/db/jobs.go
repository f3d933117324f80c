package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/types"
)

// UpsertJob creates or updates a posting row keyed by its external id.
// contentHash fingerprints the embedded content so callers can detect stale
// embeddings on re-ingest.
func (db *DB) UpsertJob(ctx context.Context, posting types.JobPosting, contentHash string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, description, location, requirements,
		                   salary, employment_type, experience_level,
		                   embedding, model_version, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2, company = $3, description = $4, location = $5,
		     requirements = $6, salary = $7, employment_type = $8,
		     experience_level = $9, embedding = $10, model_version = $11,
		     content_hash = $12, updated_at = NOW()`,
		posting.ID, posting.Title, posting.Company, posting.Description,
		posting.Location, posting.Requirements, posting.Salary,
		posting.EmploymentType, posting.ExperienceLevel,
		toFloat64(posting.Embedding.Values), posting.Embedding.ModelVersion,
		contentHash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job %s: %w", posting.ID, err)
	}
	return nil
}

const jobColumns = `id, title, company, description, location, requirements,
	salary, employment_type, experience_level, embedding, model_version, content_hash`

// GetJob retrieves one posting with its embedding. The boolean reports
// whether the row exists.
func (db *DB) GetJob(ctx context.Context, id string) (types.JobPosting, string, bool, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	posting, hash, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.JobPosting{}, "", false, nil
		}
		return types.JobPosting{}, "", false, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return posting, hash, true, nil
}

// LoadAllJobs streams every stored posting, typically to warm a vector index
// at startup.
func (db *DB) LoadAllJobs(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	defer rows.Close()

	var postings []types.JobPosting
	for rows.Next() {
		posting, _, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		postings = append(postings, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	return postings, nil
}

// CountJobs returns the number of stored postings.
func (db *DB) CountJobs(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// DeleteAllJobs removes every stored posting and returns the number removed.
func (db *DB) DeleteAllJobs(ctx context.Context) (int, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func scanJob(row pgx.Row) (types.JobPosting, string, error) {
	var p types.JobPosting
	var embedding []float64
	var modelVersion, contentHash string

	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Description, &p.Location,
		&p.Requirements, &p.Salary, &p.EmploymentType, &p.ExperienceLevel,
		&embedding, &modelVersion, &contentHash)
	if err != nil {
		return types.JobPosting{}, "", err
	}

	p.Embedding = types.EmbeddingVector{
		Values:       toFloat32(embedding),
		SourceID:     p.ID,
		ModelVersion: modelVersion,
	}
	return p, contentHash, nil
}

// Embeddings travel as FLOAT8[] because pgx maps Go slices to Postgres
// arrays only for float64. Precision is preserved in the float32 round trip.
func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
