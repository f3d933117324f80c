package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/corpus"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
)

var ingestURLCommand = &cobra.Command{
	Use:   "ingest-url <url>",
	Short: "Fetch a job posting from a URL and store it",
	Long: `Downloads a job posting page, extracts its title, company, and description, embeds the posting, and stores it alongside corpus-loaded postings.

JavaScript-rendered pages fall back to a headless browser when --use-browser is set (requires Chrome).`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestURLCmd,
}

var (
	ingestURLTitle       string
	ingestURLCompany     string
	ingestURLAPIKey      string
	ingestURLDatabaseURL string
	ingestURLUseBrowser  bool
)

func init() {
	ingestURLCommand.Flags().StringVar(&ingestURLTitle, "title", "", "Posting title override when page metadata is missing")
	ingestURLCommand.Flags().StringVar(&ingestURLCompany, "company", "", "Company override when page metadata is missing")
	ingestURLCommand.Flags().StringVar(&ingestURLAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	ingestURLCommand.Flags().StringVar(&ingestURLDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	ingestURLCommand.Flags().BoolVar(&ingestURLUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")

	rootCmd.AddCommand(ingestURLCommand)
}

// postingID derives a stable corpus id from the posting URL so repeated
// ingests of the same URL upsert rather than duplicate.
func postingID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "url-" + hex.EncodeToString(sum[:6])
}

func runIngestURLCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	url := args[0]

	cfg := config.Config{
		APIKey:      ingestURLAPIKey,
		DatabaseURL: ingestURLDatabaseURL,
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}
	resolveDatabaseURL(&cfg)
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required to persist URL ingests")
	}

	fmt.Printf("Fetching job posting from %s...\n", url)
	var posting fetch.Posting
	var err error
	if ingestURLUseBrowser {
		posting, err = fetch.PostingFromURL(ctx, url, nil)
	} else {
		var result *fetch.Result
		result, err = fetch.Page(ctx, url, nil)
		if err == nil {
			posting, err = fetch.ExtractPosting(result.HTML, url)
		}
	}
	if err != nil {
		return fmt.Errorf("fetching posting failed: %w", err)
	}

	if ingestURLTitle != "" {
		posting.Title = ingestURLTitle
	}
	if ingestURLCompany != "" {
		posting.Company = ingestURLCompany
	}
	if posting.Title == "" {
		return fmt.Errorf("page carries no posting title; provide one with --title")
	}
	if posting.Company == "" {
		return fmt.Errorf("page carries no company name; provide one with --company")
	}

	docEmbedder, err := newEmbedder(ctx, &cfg, embedding.TaskDocument)
	if err != nil {
		return fmt.Errorf("failed to create document embedder: %w", err)
	}

	database := openDatabase(ctx, &cfg)
	if database == nil {
		return fmt.Errorf("database connection required for ingest-url")
	}
	defer database.Close()

	record := corpus.Record{
		ID:          postingID(url),
		Title:       posting.Title,
		Company:     posting.Company,
		Description: posting.Description,
	}

	index := vectorindex.NewMemory(docEmbedder.Dimension(), docEmbedder.ModelVersion())
	loader := corpus.NewLoader(docEmbedder, index, database, corpus.Options{})
	result, err := loader.Load(ctx, []corpus.Record{record})
	if err != nil {
		return fmt.Errorf("storing posting failed: %w", err)
	}

	if result.Reused > 0 {
		fmt.Printf("Posting %s unchanged since last ingest.\n", record.ID)
	} else {
		fmt.Printf("Stored posting %s: %s at %s\n", record.ID, record.Title, record.Company)
	}
	return nil
}
