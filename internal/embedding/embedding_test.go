package embedding

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestStub_Deterministic(t *testing.T) {
	stub := NewStub(16)
	ctx := context.Background()

	first, err := stub.Embed(ctx, "backend engineer with Go experience")
	require.NoError(t, err)
	second, err := stub.Embed(ctx, "backend engineer with Go experience")
	require.NoError(t, err)

	assert.Equal(t, first.Values, second.Values, "identical text must yield identical vectors")
	assert.Equal(t, 16, first.Dimension())
	assert.Equal(t, stub.ModelVersion(), first.ModelVersion)
}

func TestStub_DistinctTextsDiffer(t *testing.T) {
	stub := NewStub(16)
	ctx := context.Background()

	a, err := stub.Embed(ctx, "golang developer")
	require.NoError(t, err)
	b, err := stub.Embed(ctx, "pastry chef")
	require.NoError(t, err)

	assert.NotEqual(t, a.Values, b.Values)
}

func TestStub_EmptyInput(t *testing.T) {
	stub := NewStub(8)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stub.Embed(ctx, tt.text)

			var emptyErr *EmptyInputError
			require.ErrorAs(t, err, &emptyErr)
			assert.Equal(t, -1, emptyErr.Index)
		})
	}
}

func TestStub_BatchPreservesOrder(t *testing.T) {
	stub := NewStub(8)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	vectors, err := stub.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	for i, text := range texts {
		single, err := stub.Embed(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single.Values, vectors[i].Values, "batch position %d must match single embed of %q", i, text)
	}
}

func TestStub_BatchRejectsEmptyElement(t *testing.T) {
	stub := NewStub(8)

	_, err := stub.EmbedBatch(context.Background(), []string{"ok", "  ", "also ok"})

	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, 1, emptyErr.Index)
}

func TestServiceError_Classification(t *testing.T) {
	g := &Gemini{config: DefaultGeminiConfig()}

	tests := []struct {
		name        string
		cause       error
		rateLimited bool
		retryable   bool
	}{
		{
			name:        "quota exhausted",
			cause:       &googleapi.Error{Code: http.StatusTooManyRequests},
			rateLimited: true,
			retryable:   true,
		},
		{
			name:      "service unavailable",
			cause:     &googleapi.Error{Code: http.StatusServiceUnavailable},
			retryable: true,
		},
		{
			name:      "timeout",
			cause:     context.DeadlineExceeded,
			retryable: true,
		},
		{
			name:  "bad request is terminal",
			cause: &googleapi.Error{Code: http.StatusBadRequest},
		},
		{
			name:  "opaque error is terminal",
			cause: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serr := g.serviceError("request failed", tt.cause)

			assert.Equal(t, tt.rateLimited, serr.RateLimited)
			assert.Equal(t, tt.retryable, serr.Retryable)
			assert.ErrorIs(t, serr, tt.cause, "cause must be reachable via Unwrap")
		})
	}
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", DefaultGeminiConfig())
	assert.Error(t, err)
}
