package factory

import (
	"autostream-assistant/pkg/llm"
	"autostream-assistant/pkg/llm/gemini"
	"autostream-assistant/pkg/llm/huggingface"
	"autostream-assistant/pkg/llm/ollama"
	"context"
	"fmt"
	"time"
)

// Settings carries the process-wide chat model configuration.
type Settings struct {
	Provider    string // "gemini" | "ollama" | "huggingface"
	Model       string
	Temperature float64
	MaxRetries  int
	Timeout     time.Duration
	BaseURL     string // Ollama / HuggingFace router
	APIKey      string // Gemini / HuggingFace
}

// NewLLMProvider builds the configured backend wrapped with the retry/timeout policy.
func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, error) {
	var base llm.LLMProvider
	switch s.Provider {
	case "", "gemini":
		p, err := gemini.NewGeminiProvider(ctx, s.APIKey, s.Model, s.Temperature)
		if err != nil {
			return nil, err
		}
		base = p
	case "ollama":
		base = ollama.NewOllamaProvider(s.BaseURL, s.Model, s.Temperature, s.Timeout)
	case "huggingface":
		base = huggingface.NewHuggingFaceProvider(s.APIKey, s.BaseURL, s.Model, s.Temperature, s.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
	return llm.WithRetry(base, s.MaxRetries, s.Timeout), nil
}
