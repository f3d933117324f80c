package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest",
	Short: "Embed a job corpus file and store the postings",
	Long: `Validates a JSON corpus of job postings, embeds each posting's search text, and stores the postings with their embeddings.

With a database configured the embeddings persist across runs; without one the command only verifies that the corpus embeds cleanly.`,
	RunE: runIngestCmd,
}

var (
	ingestCorpus      string
	ingestAPIKey      string
	ingestDatabaseURL string
	ingestVerbose     bool
)

func init() {
	ingestCommand.Flags().StringVarP(&ingestCorpus, "corpus", "c", "", "Path to job corpus JSON file (required)")
	ingestCommand.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	ingestCommand.Flags().StringVar(&ingestDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	ingestCommand.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = ingestCommand.MarkFlagRequired("corpus")

	rootCmd.AddCommand(ingestCommand)
}

func runIngestCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		Corpus:      ingestCorpus,
		APIKey:      ingestAPIKey,
		DatabaseURL: ingestDatabaseURL,
		Verbose:     ingestVerbose,
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}
	resolveDatabaseURL(&cfg)

	docEmbedder, err := newEmbedder(ctx, &cfg, embedding.TaskDocument)
	if err != nil {
		return fmt.Errorf("failed to create document embedder: %w", err)
	}

	database := openDatabase(ctx, &cfg)
	if database != nil {
		defer database.Close()
	}

	index, err := buildIndex(ctx, &cfg, database, docEmbedder)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintIndexStats(index.Stats())
	}
	if database == nil {
		fmt.Println("No database configured; embeddings were not persisted.")
	}
	return nil
}
