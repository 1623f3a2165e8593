package response

import (
	"context"
	"fmt"

	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/llm"
	"autostream-assistant/pkg/rag/prompt"
)

// Generator answers informational turns from the retrieved context
type Generator struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, logger logger.ILogger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate makes exactly one chat call with the grounded system prompt ahead of the history.
func (g *Generator) Generate(ctx context.Context, retrieved []string, history []llm.Message) (string, error) {
	messages := prompt.NewContextualBuilder(retrieved, history).Build()

	reply, err := g.llmProvider.Chat(ctx, messages)
	if err != nil {
		g.logger.Error("ResponseGenerator", "LLM generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("response generation failed: %w", err)
	}

	g.logger.Debug("ResponseGenerator", "Reply generated", map[string]interface{}{
		"context_passages": len(retrieved),
		"history_length":   len(history),
	})
	return reply, nil
}
