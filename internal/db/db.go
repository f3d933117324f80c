// Package db provides PostgreSQL persistence for job postings and analysis
// results. Postings are stored with their embeddings so restarts can warm
// the in-memory vector index without calling the embedding service again.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the jobs and analyses tables if they do not exist.
// Safe to call on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			company          TEXT NOT NULL,
			description      TEXT NOT NULL,
			location         TEXT NOT NULL DEFAULT '',
			requirements     TEXT NOT NULL DEFAULT '',
			salary           TEXT NOT NULL DEFAULT '',
			employment_type  TEXT NOT NULL DEFAULT '',
			experience_level TEXT NOT NULL DEFAULT '',
			embedding        FLOAT8[] NOT NULL,
			model_version    TEXT NOT NULL,
			content_hash     TEXT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS analyses (
			id         UUID PRIMARY KEY,
			task       TEXT NOT NULL,
			prompt     TEXT NOT NULL,
			artifact   JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
