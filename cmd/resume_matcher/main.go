// Package main provides the resume matcher CLI: ingest job postings into a
// vector index and analyze resumes against them.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume to job matching and analysis",
	Long:  "Resume Matcher parses resumes, retrieves the most similar job postings from an embedded corpus, and generates grounded career analyses with Gemini.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
