//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	_, _ = db.pool.Exec(ctx, "DELETE FROM jobs WHERE id LIKE 'test-%'")
	return db
}

func testPosting(id string) types.JobPosting {
	return types.JobPosting{
		ID:          id,
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build Go services.",
		Location:    "Remote",
		Embedding: types.EmbeddingVector{
			Values:       []float32{0.1, 0.2, 0.3},
			SourceID:     id,
			ModelVersion: "stub-embedding-001",
		},
	}
}

func TestIntegration_Jobs_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id := "test-" + uuid.New().String()
	posting := testPosting(id)

	require.NoError(t, db.UpsertJob(ctx, posting, "hash-1"))

	got, hash, found, err := db.GetJob(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hash-1", hash)
	assert.Equal(t, posting.Title, got.Title)
	assert.Equal(t, posting.Embedding.Values, got.Embedding.Values)
	assert.Equal(t, posting.Embedding.ModelVersion, got.Embedding.ModelVersion)

	// Upsert with the same id must replace, not duplicate.
	posting.Description = "Build and operate Go services."
	require.NoError(t, db.UpsertJob(ctx, posting, "hash-2"))

	got, hash, found, err = db.GetJob(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hash-2", hash)
	assert.Equal(t, "Build and operate Go services.", got.Description)

	_, _, found, err = db.GetJob(ctx, "test-missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIntegration_LoadAllJobs(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	ids := []string{"test-a-" + uuid.New().String(), "test-b-" + uuid.New().String()}
	for _, id := range ids {
		require.NoError(t, db.UpsertJob(ctx, testPosting(id), "hash"))
	}

	postings, err := db.LoadAllJobs(ctx)
	require.NoError(t, err)

	loaded := make(map[string]bool)
	for _, p := range postings {
		loaded[p.ID] = true
		assert.NotEmpty(t, p.Embedding.Values)
	}
	for _, id := range ids {
		assert.True(t, loaded[id])
	}
}

func TestIntegration_Analyses(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	artifact := &types.AnalysisArtifact{
		Task:    types.TaskSummary,
		Summary: &types.Summary{Text: "Strong backend match."},
	}

	id, err := db.SaveAnalysis(ctx, types.TaskSummary, "prompt text", artifact)
	require.NoError(t, err)

	got, err := db.GetAnalysis(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.TaskSummary, got.Task)
	assert.Equal(t, "prompt text", got.Prompt)
	require.NotNil(t, got.Artifact.Summary)
	assert.Equal(t, "Strong backend match.", got.Artifact.Summary.Text)

	missing, err := db.GetAnalysis(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := db.ListAnalyses(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}
