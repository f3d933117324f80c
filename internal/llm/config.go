// Package llm provides the generation-model client abstraction.
// The analysis pipeline depends only on the Client interface, so the
// concrete provider can change without touching context assembly.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: short summaries, list generation.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: analysis, structured output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: gap analysis, long-form writing.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for the generation client.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard
// then lite when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
