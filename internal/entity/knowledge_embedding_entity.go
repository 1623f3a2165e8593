package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	EmbeddingModel string
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// ScoredKnowledgeEmbedding wraps a passage with its cosine similarity to the query
type ScoredKnowledgeEmbedding struct {
	Embedding  *KnowledgeEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}
