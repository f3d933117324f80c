// Package vectorindex stores job-posting vectors and answers top-k cosine
// similarity queries. The storage contract (upsert/query/size) is a narrow
// capability interface so the in-memory brute-force implementation can be
// swapped for an external vector database without touching matcher logic.
package vectorindex

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// Stats summarizes the state of an index.
type Stats struct {
	Count        int    `json:"count"`
	Dimension    int    `json:"dimension"`
	ModelVersion string `json:"model_version"`
}

// Index is the vector-store capability used by the matcher and corpus loader.
type Index interface {
	// Upsert inserts or replaces a posting by id. Idempotent. Fails with
	// DimensionMismatchError if the posting's embedding does not match the
	// corpus dimension or model version.
	Upsert(posting types.JobPosting) error

	// Query returns at most k results sorted by descending cosine
	// similarity, ties broken by ascending posting id, ranks 1-based.
	// Fails with DimensionMismatchError for incompatible query vectors.
	Query(vector types.EmbeddingVector, k int) ([]types.MatchResult, error)

	// Size returns the number of stored postings.
	Size() int

	// DeleteAll removes every posting. Maintenance operation.
	DeleteAll()

	// Stats reports count and corpus constants.
	Stats() Stats
}
