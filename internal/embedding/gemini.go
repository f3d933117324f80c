package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// DefaultModel is the embedding model used unless configured otherwise.
	DefaultModel = "text-embedding-004"

	// DefaultDimension is the output dimension of DefaultModel.
	DefaultDimension = 768

	// maxBatchSize is the upstream per-request limit on batched texts.
	maxBatchSize = 100
)

// GeminiConfig configures the Gemini embedding adapter.
type GeminiConfig struct {
	Model     string
	Dimension int
	Task      TaskType
}

// DefaultGeminiConfig returns the default query-side configuration.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:     DefaultModel,
		Dimension: DefaultDimension,
		Task:      TaskQuery,
	}
}

// Gemini embeds text via the Gemini embedding API.
// It implements Embedder.
type Gemini struct {
	client *genai.Client
	config GeminiConfig
}

var _ Embedder = (*Gemini)(nil)

// NewGemini creates a Gemini-backed embedder.
func NewGemini(ctx context.Context, apiKey string, config GeminiConfig) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Dimension == 0 {
		config.Dimension = DefaultDimension
	}
	if config.Task == "" {
		config.Task = TaskQuery
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, config: config}, nil
}

// Embed converts one text into a vector.
func (g *Gemini) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	if err := validateInput(text, -1); err != nil {
		return types.EmbeddingVector{}, err
	}

	model := g.embeddingModel()
	res, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return types.EmbeddingVector{}, g.serviceError("embed request failed", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return types.EmbeddingVector{}, &ServiceError{Message: "response contained no embedding"}
	}

	return types.EmbeddingVector{
		Values:       res.Embedding.Values,
		ModelVersion: g.config.Model,
	}, nil
}

// EmbedBatch converts several texts, chunking requests to the upstream limit.
// Returned vectors preserve input order 1:1.
func (g *Gemini) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	if len(texts) == 0 {
		return []types.EmbeddingVector{}, nil
	}
	for i, text := range texts {
		if err := validateInput(text, i); err != nil {
			return nil, err
		}
	}

	model := g.embeddingModel()
	vectors := make([]types.EmbeddingVector, 0, len(texts))

	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))
		chunk := texts[start:end]

		batch := model.NewBatch()
		for _, text := range chunk {
			batch.AddContent(genai.Text(text))
		}

		res, err := model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, g.serviceError(fmt.Sprintf("batch embed failed at offset %d", start), err)
		}
		if len(res.Embeddings) != len(chunk) {
			return nil, &ServiceError{
				Message: fmt.Sprintf("batch response size mismatch: sent %d texts, got %d embeddings", len(chunk), len(res.Embeddings)),
			}
		}

		for _, emb := range res.Embeddings {
			vectors = append(vectors, types.EmbeddingVector{
				Values:       emb.Values,
				ModelVersion: g.config.Model,
			})
		}
	}

	return vectors, nil
}

// ModelVersion names the configured embedding model.
func (g *Gemini) ModelVersion() string {
	return g.config.Model
}

// Dimension is the configured output dimension.
func (g *Gemini) Dimension() int {
	return g.config.Dimension
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *Gemini) embeddingModel() *genai.EmbeddingModel {
	model := g.client.EmbeddingModel(g.config.Model)
	switch g.config.Task {
	case TaskDocument:
		model.TaskType = genai.TaskTypeRetrievalDocument
	default:
		model.TaskType = genai.TaskTypeRetrievalQuery
	}
	return model
}

// serviceError classifies an upstream failure so callers can decide between
// backing off (rate limits), retrying (transient), and giving up.
func (g *Gemini) serviceError(message string, cause error) *ServiceError {
	serr := &ServiceError{Message: message, Cause: cause}

	var apiErr *googleapi.Error
	if errors.As(cause, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			serr.RateLimited = true
			serr.Retryable = true
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			serr.Retryable = true
		}
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		serr.Retryable = true
	}

	return serr
}
