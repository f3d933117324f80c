package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingFloatConversion(t *testing.T) {
	values := []float32{0.25, -0.5, 1.0, 0.0, -0.125}

	widened := toFloat64(values)
	assert.Len(t, widened, len(values))

	narrowed := toFloat32(widened)
	assert.Equal(t, values, narrowed, "float32 values must survive the FLOAT8[] round trip")
}

func TestEmbeddingFloatConversionEmpty(t *testing.T) {
	assert.Empty(t, toFloat64(nil))
	assert.Empty(t, toFloat32(nil))
}
