package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/matcher"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/sections"
)

var searchCommand = &cobra.Command{
	Use:   "search",
	Short: "Match a resume against the job index without generating an analysis",
	RunE:  runSearchCmd,
}

var (
	searchResume      string
	searchFormat      string
	searchTopK        int
	searchCorpus      string
	searchAPIKey      string
	searchDatabaseURL string
)

func init() {
	searchCommand.Flags().StringVarP(&searchResume, "resume", "r", "", "Path to resume file (required)")
	searchCommand.Flags().StringVar(&searchFormat, "format", "", "Resume format override (pdf, docx, text); inferred from extension when unset")
	searchCommand.Flags().IntVarP(&searchTopK, "top-k", "k", config.DefaultTopK, "Number of job matches to retrieve")
	searchCommand.Flags().StringVarP(&searchCorpus, "corpus", "c", "", "Path to job corpus JSON file to load before matching")
	searchCommand.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	searchCommand.Flags().StringVar(&searchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	_ = searchCommand.MarkFlagRequired("resume")

	rootCmd.AddCommand(searchCommand)
}

func runSearchCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		Resume:      searchResume,
		TopK:        searchTopK,
		Corpus:      searchCorpus,
		APIKey:      searchAPIKey,
		DatabaseURL: searchDatabaseURL,
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}
	resolveDatabaseURL(&cfg)

	format, err := inferFormat(cfg.Resume, searchFormat)
	if err != nil {
		return err
	}

	docEmbedder, err := newEmbedder(ctx, &cfg, embedding.TaskDocument)
	if err != nil {
		return fmt.Errorf("failed to create document embedder: %w", err)
	}
	queryEmbedder, err := newEmbedder(ctx, &cfg, embedding.TaskQuery)
	if err != nil {
		return fmt.Errorf("failed to create query embedder: %w", err)
	}

	database := openDatabase(ctx, &cfg)
	if database != nil {
		defer database.Close()
	}

	index, err := buildIndex(ctx, &cfg, database, docEmbedder)
	if err != nil {
		return err
	}
	if index.Size() == 0 {
		return fmt.Errorf("job index is empty; load postings with --corpus or the ingest command first")
	}

	raw, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("reading resume failed: %w", err)
	}
	resumeSections, err := sections.Parse(raw, format)
	if err != nil {
		return fmt.Errorf("parsing resume failed: %w", err)
	}

	match := matcher.New(queryEmbedder, index)
	matches, err := match.Match(ctx, resumeSections, cfg.TopK)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMatches(matches)
	return nil
}
