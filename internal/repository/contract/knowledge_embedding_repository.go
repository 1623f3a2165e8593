package contract

import (
	"context"

	"autostream-assistant/internal/entity"
)

type KnowledgeEmbeddingRepository interface {
	// ReplaceAll swaps the whole passage set for a model; callers run it inside a transaction.
	ReplaceAll(ctx context.Context, embeddingModel string, embeddings []*entity.KnowledgeEmbedding) error
	Count(ctx context.Context, embeddingModel string) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, embeddingModel string) ([]*entity.ScoredKnowledgeEmbedding, error)
}
