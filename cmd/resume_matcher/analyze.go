package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full resume analysis pipeline end-to-end",
	Long: `Orchestrates the entire analysis process: extraction -> section parsing -> embedding -> matching -> context assembly -> generation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath  string
	analyzeResume      string
	analyzeFormat      string
	analyzeTask        string
	analyzeTopK        int
	analyzeCorpus      string
	analyzeAPIKey      string
	analyzeVerbose     bool
	analyzeDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (PDF, DOCX, or text)")
	analyzeCommand.Flags().StringVar(&analyzeFormat, "format", "", "Resume format override (pdf, docx, text); inferred from extension when unset")
	analyzeCommand.Flags().StringVarP(&analyzeTask, "task", "t", string(types.TaskSummary), "Analysis task: summary, interview_questions, cover_letter, or skill_gap")
	analyzeCommand.Flags().IntVarP(&analyzeTopK, "top-k", "k", 0, "Number of job matches to retrieve")
	analyzeCommand.Flags().StringVarP(&analyzeCorpus, "corpus", "c", "", "Path to job corpus JSON file to load before matching")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for posting and analysis persistence
	analyzeCommand.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("task") {
		cfg.Task = analyzeTask
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = analyzeTopK
	}
	if cmd.Flags().Changed("corpus") {
		cfg.Corpus = analyzeCorpus
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{Task: string(types.TaskSummary)})

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	task, ok := types.ParseTaskKind(cfg.Task)
	if !ok {
		return fmt.Errorf("unknown task %q (expected one of: summary, interview_questions, cover_letter, skill_gap)", cfg.Task)
	}
	format, err := inferFormat(cfg.Resume, analyzeFormat)
	if err != nil {
		return err
	}

	// Step 5: Credentials
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}
	resolveDatabaseURL(&cfg)

	// Step 6: Wire the matching core
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

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	// Step 7: Run
	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		ResumePath:  cfg.Resume,
		Format:      format,
		Task:        task,
		TopK:        cfg.TopK,
		Embedder:    queryEmbedder,
		Index:       index,
		LLMClient:   llmClient,
		Verbose:     cfg.Verbose,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(result.Artifact.Text())
	return nil
}
