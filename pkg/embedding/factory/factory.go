package factory

import (
	"autostream-assistant/pkg/embedding"
	"autostream-assistant/pkg/embedding/jina"
	"context"
	"strings"
)

// Settings selects the embedding backend. The model name prefix decides:
// "models/" is a remote Gemini model, "jina-" a Jina model, anything else a local Ollama model.
type Settings struct {
	ModelName     string
	GeminiAPIKey  string
	JinaAPIKey    string
	OllamaBaseURL string
}

func NewEmbeddingProvider(ctx context.Context, s Settings) (embedding.EmbeddingProvider, error) {
	switch {
	case strings.HasPrefix(s.ModelName, "models/"):
		return embedding.NewGeminiProvider(ctx, s.GeminiAPIKey, s.ModelName)
	case strings.HasPrefix(s.ModelName, "jina-"):
		return jina.NewJinaProvider(s.JinaAPIKey, s.ModelName), nil
	default:
		return embedding.NewOllamaProvider(s.OllamaBaseURL, s.ModelName), nil
	}
}
