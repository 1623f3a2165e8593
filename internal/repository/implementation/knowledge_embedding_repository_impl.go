package implementation

import (
	"context"

	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/mapper"
	"autostream-assistant/internal/model"
	"autostream-assistant/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeEmbeddingMapper
}

func NewKnowledgeEmbeddingRepository(db *gorm.DB) contract.KnowledgeEmbeddingRepository {
	return &KnowledgeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeEmbeddingMapper(),
	}
}

func (r *KnowledgeEmbeddingRepositoryImpl) ReplaceAll(ctx context.Context, embeddingModel string, embeddings []*entity.KnowledgeEmbedding) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("embedding_model = ?", embeddingModel).Delete(&model.KnowledgeEmbedding{}).Error; err != nil {
		return err
	}
	if len(embeddings) == 0 {
		return nil
	}

	for _, e := range embeddings {
		e.EmbeddingModel = embeddingModel
	}
	models := r.mapper.ToModels(embeddings)
	if err := db.Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) Count(ctx context.Context, embeddingModel string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgeEmbedding{}).
		Where("embedding_model = ?", embeddingModel).
		Count(&count).Error
	return count, err
}

// SearchSimilarWithScore ranks by pgvector cosine distance; equal distances keep passage order.
func (r *KnowledgeEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, embeddingModel string) ([]*entity.ScoredKnowledgeEmbedding, error) {
	if limit <= 0 {
		return []*entity.ScoredKnowledgeEmbedding{}, nil
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	type result struct {
		model.KnowledgeEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_embeddings").
		Select("knowledge_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("embedding_model = ?", embeddingModel).
		Order(gorm.Expr("embedding_value <=> ?", queryVector)).
		Order("chunk_index ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredKnowledgeEmbedding, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredKnowledgeEmbedding{
			Embedding:  r.mapper.ToEntity(&res.KnowledgeEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
