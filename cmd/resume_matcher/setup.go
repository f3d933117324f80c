package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/corpus"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
)

// resolveAPIKey fills the API key from the environment when no flag or
// config value set it.
func resolveAPIKey(cfg *config.Config) error {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	return nil
}

// resolveDatabaseURL fills the database URL from the environment. A missing
// URL is not an error; persistence is optional.
func resolveDatabaseURL(cfg *config.Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// inferFormat resolves the resume format from an explicit flag value or,
// when empty, from the file extension.
func inferFormat(path, flag string) (types.Format, error) {
	source := flag
	if source == "" {
		source = filepath.Ext(path)
	}
	format, ok := types.ParseFormat(source)
	if !ok {
		return "", fmt.Errorf("unsupported resume format %q (expected pdf, docx, or text)", source)
	}
	return format, nil
}

// newEmbedder builds a Gemini embedder for the given retrieval task.
func newEmbedder(ctx context.Context, cfg *config.Config, task embedding.TaskType) (*embedding.Gemini, error) {
	return embedding.NewGemini(ctx, cfg.APIKey, embedding.GeminiConfig{
		Model:     cfg.Model,
		Dimension: cfg.Dimension,
		Task:      task,
	})
}

// openDatabase connects when a database URL is configured. Connection
// failures downgrade to a nil database with a warning rather than aborting.
func openDatabase(ctx context.Context, cfg *config.Config) *db.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Warning: Failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without database persistence...\n")
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		fmt.Printf("Warning: Failed to ensure database schema: %v\n", err)
		database.Close()
		return nil
	}
	return database
}

// buildIndex assembles the in-memory vector index: stored postings first,
// then the corpus file when one is configured. database may be nil.
func buildIndex(ctx context.Context, cfg *config.Config, database *db.DB, docEmbedder *embedding.Gemini) (vectorindex.Index, error) {
	index := vectorindex.NewMemory(docEmbedder.Dimension(), docEmbedder.ModelVersion())

	if database != nil {
		postings, err := database.LoadAllJobs(ctx)
		if err != nil {
			return nil, fmt.Errorf("warming index from database: %w", err)
		}
		skipped := 0
		for _, posting := range postings {
			if err := index.Upsert(posting); err != nil {
				// Postings embedded with a different model or dimension
				// cannot be compared; they re-embed on the next ingest.
				skipped++
				continue
			}
		}
		if skipped > 0 {
			fmt.Printf("Warning: Skipped %d stored postings with incompatible embeddings\n", skipped)
		}
	}

	if cfg.Corpus != "" {
		var store corpus.Store
		if database != nil {
			store = database
		}
		loader := corpus.NewLoader(docEmbedder, index, store, corpus.Options{})
		result, err := loader.LoadFile(ctx, cfg.Corpus)
		if err != nil {
			return nil, fmt.Errorf("loading corpus: %w", err)
		}
		fmt.Printf("Loaded %d postings (%d embedded, %d from cache)\n",
			result.Loaded, result.Embedded, result.Reused)
	}

	return index, nil
}
