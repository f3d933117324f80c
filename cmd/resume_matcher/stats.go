package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
)

var statsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Show stored posting and analysis counts",
	RunE:  runStatsCmd,
}

var clearCommand = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored job postings",
	RunE:  runClearCmd,
}

var (
	statsDatabaseURL string
	clearDatabaseURL string
	clearConfirmed   bool
)

func init() {
	statsCommand.Flags().StringVar(&statsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	clearCommand.Flags().StringVar(&clearDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	clearCommand.Flags().BoolVar(&clearConfirmed, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(statsCommand)
	rootCmd.AddCommand(clearCommand)
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{DatabaseURL: statsDatabaseURL}
	resolveDatabaseURL(&cfg)
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database := openDatabase(ctx, &cfg)
	if database == nil {
		return fmt.Errorf("database connection failed")
	}
	defer database.Close()

	jobs, err := database.CountJobs(ctx)
	if err != nil {
		return err
	}
	analyses, err := database.ListAnalyses(ctx, 1)
	if err != nil {
		return err
	}

	fmt.Printf("Job postings: %d\n", jobs)
	if len(analyses) > 0 {
		fmt.Printf("Latest analysis: %s (%s)\n", analyses[0].ID, analyses[0].Task)
	} else {
		fmt.Println("No analyses stored yet.")
	}
	return nil
}

func runClearCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{DatabaseURL: clearDatabaseURL}
	resolveDatabaseURL(&cfg)
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	if !clearConfirmed {
		fmt.Print("Delete all stored job postings? [y/N]: ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	database := openDatabase(ctx, &cfg)
	if database == nil {
		return fmt.Errorf("database connection failed")
	}
	defer database.Close()

	deleted, err := database.DeleteAllJobs(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d job postings.\n", deleted)
	return nil
}
