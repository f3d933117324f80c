package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Analysis is a stored analysis run: the prompt that was sent and the
// artifact that came back.
type Analysis struct {
	ID        uuid.UUID               `json:"id"`
	Task      types.TaskKind          `json:"task"`
	Prompt    string                  `json:"prompt"`
	Artifact  *types.AnalysisArtifact `json:"artifact"`
	CreatedAt time.Time               `json:"created_at"`
}

// SaveAnalysis persists one analysis run and returns its id.
func (db *DB) SaveAnalysis(ctx context.Context, task types.TaskKind, prompt string, artifact *types.AnalysisArtifact) (uuid.UUID, error) {
	artifactJSON, err := json.Marshal(artifact)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal analysis artifact: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, task, prompt, artifact) VALUES ($1, $2, $3, $4)`,
		id, string(task), prompt, artifactJSON)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves one analysis by id, or nil when it does not exist.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var task string
	var artifactJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, task, prompt, artifact, created_at FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &task, &a.Prompt, &artifactJSON, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	a.Task = types.TaskKind(task)
	if err := json.Unmarshal(artifactJSON, &a.Artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis artifact: %w", err)
	}
	return &a, nil
}

// ListAnalyses retrieves recent analyses, newest first.
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, task, prompt, artifact, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		var task string
		var artifactJSON []byte
		if err := rows.Scan(&a.ID, &task, &a.Prompt, &artifactJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a.Task = types.TaskKind(task)
		if err := json.Unmarshal(artifactJSON, &a.Artifact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis artifact: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}
