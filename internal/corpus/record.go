// Package corpus seeds and maintains the vector index from structured
// job-posting sources: JSON corpus files and single-posting URL ingests.
// The loader is decoupled from the matching core and may be re-run
// idempotently; unchanged postings reuse their cached embeddings.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Record is one job posting as it appears in a corpus source file.
type Record struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Description string `json:"description" validate:"required"`

	Location        string `json:"location,omitempty"`
	Requirements    string `json:"requirements,omitempty"`
	Salary          string `json:"salary,omitempty"`
	EmploymentType  string `json:"employment_type,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
}

// Posting converts the record to a JobPosting without an embedding.
func (r Record) Posting() types.JobPosting {
	return types.JobPosting{
		ID:              r.ID,
		Title:           r.Title,
		Company:         r.Company,
		Description:     r.Description,
		Location:        r.Location,
		Requirements:    r.Requirements,
		Salary:          r.Salary,
		EmploymentType:  r.EmploymentType,
		ExperienceLevel: r.ExperienceLevel,
	}
}

// ContentHash fingerprints the embedded content of a posting. Re-ingesting a
// posting whose hash is unchanged reuses the cached embedding; the hash also
// covers the model version so a model switch forces re-embedding.
func ContentHash(searchText, modelVersion string) string {
	sum := sha256.Sum256([]byte(modelVersion + "\x00" + searchText))
	return hex.EncodeToString(sum[:])
}
