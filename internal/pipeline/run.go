// Package pipeline provides the high-level orchestration for the resume
// analysis process: extract text, parse sections, match against the job
// index, assemble the generation context, and generate the analysis.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/assembler"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/extract"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/matcher"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names reported through ProgressCallback.
const (
	StepExtract  = "extract"
	StepSections = "sections"
	StepMatch    = "match"
	StepAssemble = "assemble"
	StepGenerate = "generate"
	StepPersist  = "persist"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath string
	Format     types.Format
	Task       types.TaskKind
	TopK       int

	Embedder  embedding.Embedder
	Index     vectorindex.Index
	LLMClient llm.Client

	Verbose     bool
	DatabaseURL string
	OnProgress  ProgressCallback
}

// Result holds the outputs of a full pipeline run.
type Result struct {
	Sections types.ResumeSections
	Contact  types.ContactInfo
	Matches  types.MatchList
	Artifact types.AnalysisArtifact

	// AnalysisID is set when the artifact was persisted.
	AnalysisID uuid.UUID
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// Run orchestrates the full resume analysis pipeline
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)

	// Database persistence is best effort. A missing or unreachable
	// database downgrades to an in-memory run with a warning.
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err != nil {
				fmt.Printf("Warning: Failed to ensure database schema: %v\n", err)
				database = nil
			} else if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	fmt.Printf("Step 1/5: Extracting resume text from %s...\n", opts.ResumePath)
	raw, err := os.ReadFile(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("reading resume failed: %w", err)
	}
	emitProgress(&opts, StepExtract, fmt.Sprintf("Read %d bytes", len(raw)), nil)

	fmt.Printf("Step 2/5: Parsing resume sections...\n")
	text, err := extract.Text(raw, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("parsing resume failed: %w", err)
	}
	resumeSections := sections.Split(text)
	// Contact extraction needs the text in document order; the name
	// heuristic keys off the top of the page.
	contact := sections.ExtractContact(text)
	if opts.Verbose {
		printer.PrintResumeSections(resumeSections)
	}
	emitProgress(&opts, StepSections,
		fmt.Sprintf("Parsed %d lines across %d sections", resumeSections.TotalLines(), len(types.AllSections())), nil)

	fmt.Printf("Step 3/5: Matching against %d job postings...\n", opts.Index.Size())
	match := matcher.New(opts.Embedder, opts.Index)
	matches, err := match.Match(ctx, resumeSections, opts.TopK)
	if err != nil {
		return nil, fmt.Errorf("matching failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintMatches(matches)
	}
	emitProgress(&opts, StepMatch, fmt.Sprintf("Found %d matches", matches.Len()), matches)

	fmt.Printf("Step 4/5: Assembling %s context...\n", opts.Task)
	analysisCtx, err := assembler.BuildContext(resumeSections, matches.Results, opts.Task)
	if err != nil {
		return nil, fmt.Errorf("assembling context failed: %w", err)
	}
	emitProgress(&opts, StepAssemble, fmt.Sprintf("Assembled prompt (%d chars)", len(analysisCtx.Prompt)), nil)

	fmt.Printf("Step 5/5: Generating %s...\n", opts.Task)
	generator := &assembler.LLMGenerator{
		Client: opts.LLMClient,
		Tier:   assembler.TierFor(opts.Task),
	}
	artifact, err := assembler.Generate(ctx, generator, analysisCtx)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintArtifact(&artifact)
	}
	emitProgress(&opts, StepGenerate, fmt.Sprintf("Generated %s artifact", artifact.Task), nil)

	result := &Result{
		Sections: resumeSections,
		Contact:  contact,
		Matches:  matches,
		Artifact: artifact,
	}

	if database != nil {
		id, err := database.SaveAnalysis(ctx, opts.Task, analysisCtx.Prompt, &artifact)
		if err != nil {
			fmt.Printf("Warning: Failed to persist analysis: %v\n", err)
		} else {
			result.AnalysisID = id
			emitProgress(&opts, StepPersist, fmt.Sprintf("Saved analysis %s", id), nil)
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Saved analysis: %s\n", id)
			}
		}
	}

	return result, nil
}
