package unitofwork

import (
	"context"
	"os"
	"testing"
	"time"

	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/model"
	"autostream-assistant/internal/repository/specification"
	"autostream-assistant/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a disposable database only: it rewrites knowledge_embeddings.
func TestUnitOfWork_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &model.Lead{}, &model.KnowledgeEmbedding{}))

	ctx := context.Background()
	factory := NewRepositoryFactory(db)

	t.Run("knowledge embeddings ranked by cosine distance", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		repo := uow.KnowledgeEmbeddingRepository()
		err := repo.ReplaceAll(ctx, "test-model", []*entity.KnowledgeEmbedding{
			{Document: "Plan: Basic", EmbeddingValue: []float32{1, 0, 0}, ChunkIndex: 0},
			{Document: "Plan: Pro", EmbeddingValue: []float32{0, 1, 0}, ChunkIndex: 1},
			{Document: "Policies", EmbeddingValue: []float32{0, 0, 1}, ChunkIndex: 2},
		})
		require.NoError(t, err)

		results, err := repo.SearchSimilarWithScore(ctx, []float32{0.1, 1, 0}, 2, "test-model")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Plan: Pro", results[0].Embedding.Document)
		assert.Equal(t, "Plan: Basic", results[1].Embedding.Document)
		assert.Greater(t, results[0].Similarity, results[1].Similarity)

		require.NoError(t, uow.Rollback())
	})

	t.Run("leads", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer func() { _ = uow.Rollback() }()

		sessionID := uuid.NewString()
		lead := &entity.Lead{
			SessionId:  sessionID,
			Name:       "John",
			Email:      "John@X.com",
			Platform:   "YouTube",
			Plan:       "pro",
			Metadata:   map[string]interface{}{"source": "test"},
			CapturedAt: time.Now(),
		}
		require.NoError(t, uow.LeadRepository().Create(ctx, lead))
		assert.NotEqual(t, uuid.Nil, lead.Id)

		found, err := uow.LeadRepository().FindOne(ctx,
			specification.LeadByEmail{Email: "john@x.com"},
			specification.LeadBySession{SessionId: sessionID},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "test", found.Metadata["source"])
	})

	t.Run("transaction guards", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		assert.ErrorIs(t, uow.Commit(), ErrNoTransaction)
		assert.ErrorIs(t, uow.Rollback(), ErrNoTransaction)
	})
}

func TestUnitOfWork_GuardsWithoutDatabase(t *testing.T) {
	uow := NewUnitOfWork(context.Background(), nil)

	assert.ErrorIs(t, uow.Commit(), ErrNoTransaction)
	assert.ErrorIs(t, uow.Rollback(), ErrNoTransaction)
}
