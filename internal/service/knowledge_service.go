package service

import (
	"context"
	"fmt"

	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/repository/unitofwork"
	"autostream-assistant/pkg/embedding"
	"autostream-assistant/pkg/knowledge"
	"autostream-assistant/pkg/rag/search"
)

type IKnowledgeService interface {
	// Seed embeds every passage of the knowledge base and replaces the stored set for
	// the current embedding model. It returns the number of passages stored.
	Seed(ctx context.Context, path string) (int, error)
	// EnsureSeeded seeds only when nothing is stored yet for the current model.
	EnsureSeeded(ctx context.Context, path string) error
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   embedding.EmbeddingProvider
	logger     logger.ILogger
}

func NewKnowledgeService(uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider, log logger.ILogger) IKnowledgeService {
	return &knowledgeService{
		uowFactory: uowFactory,
		provider:   provider,
		logger:     log,
	}
}

func (s *knowledgeService) Seed(ctx context.Context, path string) (int, error) {
	texts, err := knowledge.LoadTexts(path)
	if err != nil {
		return 0, err
	}

	rows := make([]*entity.KnowledgeEmbedding, 0, len(texts))
	for i, text := range texts {
		vec, err := s.provider.Embed(ctx, text, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed passage %d: %w", i, err)
		}
		rows = append(rows, &entity.KnowledgeEmbedding{
			Document:       text,
			EmbeddingValue: embedding.NormalizeVector(vec),
			ChunkIndex:     i,
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	if err := uow.KnowledgeEmbeddingRepository().ReplaceAll(ctx, s.provider.Name(), rows); err != nil {
		_ = uow.Rollback()
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("KnowledgeService", "Knowledge base seeded", map[string]interface{}{
		"path":     path,
		"model":    s.provider.Name(),
		"passages": len(rows),
	})
	return len(rows), nil
}

func (s *knowledgeService) EnsureSeeded(ctx context.Context, path string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.KnowledgeEmbeddingRepository().Count(ctx, s.provider.Name())
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.Seed(ctx, path)
	return err
}

// PgvectorRetriever answers retrieval queries from the knowledge_embeddings table.
type PgvectorRetriever struct {
	uowFactory unitofwork.RepositoryFactory
	provider   embedding.EmbeddingProvider
}

var _ search.Retriever = (*PgvectorRetriever)(nil)

func NewPgvectorRetriever(uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) *PgvectorRetriever {
	return &PgvectorRetriever{
		uowFactory: uowFactory,
		provider:   provider,
	}
}

func (r *PgvectorRetriever) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		return []string{}, nil
	}

	vec, err := r.provider.Embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	results, err := uow.KnowledgeEmbeddingRepository().SearchSimilarWithScore(ctx, embedding.NormalizeVector(vec), k, r.provider.Name())
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(results))
	for _, res := range results {
		out = append(out, res.Embedding.Document)
	}
	return out, nil
}
