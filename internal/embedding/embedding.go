// Package embedding converts text into fixed-dimension vectors through a
// narrow capability interface, so the concrete backend can be swapped
// without touching matcher or index logic.
package embedding

import (
	"context"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// TaskType hints the upstream model about how the embedding will be used.
// Document embeddings index the corpus; query embeddings search it.
type TaskType string

// Embedding task types
const (
	TaskDocument TaskType = "retrieval_document"
	TaskQuery    TaskType = "retrieval_query"
)

// Embedder converts text into fixed-length vectors. Implementations are
// stateless; result vectors preserve input order 1:1 in batch calls.
type Embedder interface {
	// Embed converts one text into a vector. Fails with EmptyInputError
	// for blank input and ServiceError on upstream failure.
	Embed(ctx context.Context, text string) (types.EmbeddingVector, error)

	// EmbedBatch converts several texts, preserving order. Requests are
	// chunked to the upstream batch limit; a chunk never splits a text.
	EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error)

	// ModelVersion names the embedding model. Vectors from different
	// model versions are not comparable.
	ModelVersion() string

	// Dimension is the fixed vector length this embedder produces.
	Dimension() int
}

// validateInput rejects blank texts before they reach the backend.
func validateInput(text string, batchIndex int) error {
	if strings.TrimSpace(text) == "" {
		return &EmptyInputError{Index: batchIndex}
	}
	return nil
}
