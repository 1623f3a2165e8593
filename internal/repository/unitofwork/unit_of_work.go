package unitofwork

import (
	"context"

	"autostream-assistant/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	LeadRepository() contract.LeadRepository
	KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository
}
