// Package llm provides the Gemini client and model-chain configuration.
// All generation goes through a fallback chain of models: when the current
// model is rate limited the client moves down the chain for subsequent
// requests instead of failing the caller.
package llm

import (
	"os"
	"strings"
)

// DefaultModelChain is the fallback order used when MODEL_CHAIN is unset.
// Ordered best-first; later entries trade quality for quota headroom.
var DefaultModelChain = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

// DefaultEmbeddingModel is the model used for document and query embeddings.
const DefaultEmbeddingModel = "gemini-embedding-001"

// Config holds the model configuration for the client.
type Config struct {
	ModelChain     []string
	EmbeddingModel string
}

// LoadConfig builds the model configuration from the environment.
// MODEL_CHAIN is a comma-separated, best-first list of Gemini model names;
// EMBEDDING_MODEL overrides the embedding model.
func LoadConfig() *Config {
	cfg := &Config{
		ModelChain:     DefaultModelChain,
		EmbeddingModel: DefaultEmbeddingModel,
	}
	if chain := os.Getenv("MODEL_CHAIN"); chain != "" {
		var models []string
		for _, m := range strings.Split(chain, ",") {
			m = strings.TrimSpace(m)
			if m != "" {
				models = append(models, m)
			}
		}
		if len(models) > 0 {
			cfg.ModelChain = models
		}
	}
	if model := os.Getenv("EMBEDDING_MODEL"); model != "" {
		cfg.EmbeddingModel = model
	}
	return cfg
}
