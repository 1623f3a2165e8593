package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autostream-assistant/internal/config"
	"autostream-assistant/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knowledgeFixture = `{"pricing":[{"plan":"Basic","price":29,"limits":"10 videos/month","quality":"720p"}]}`

// embeddingServer answers /api/embeddings with a fixed vector; no chat calls happen at startup.
func embeddingServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float64{1, 0, 0}})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	url := embeddingServer(t)

	kbPath := filepath.Join(t.TempDir(), "knowledge_base.json")
	require.NoError(t, os.WriteFile(kbPath, []byte(knowledgeFixture), 0o644))

	return &config.Config{
		App: config.AppConfig{
			Environment:       "test",
			KnowledgeBasePath: kbPath,
			RetrievalTopK:     3,
			SessionStore:      "memory",
			SessionTTL:        time.Hour,
			VectorStore:       "memory",
			LeadTopic:         "LEAD_CAPTURED",
		},
		Model: config.ModelConfig{
			Provider:      "ollama",
			Name:          "llama3.2",
			Timeout:       time.Second,
			OllamaBaseURL: url,
		},
		Embedding: config.EmbeddingConfig{
			ModelName:     "all-minilm",
			OllamaBaseURL: url,
		},
	}
}

func TestNewContainer_InMemory(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t), Options{Logger: logger.NewNop()})
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Graph)
	assert.NotNil(t, c.AssistantService)
	assert.NotEmpty(t, c.closers)
}

func TestNewContainer_PgvectorWithoutDB(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.VectorStore = "pgvector"

	c, err := NewContainer(context.Background(), cfg, Options{Logger: logger.NewNop()})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrPgvectorWithoutDB)
}

func TestNewContainer_LateFailureReturnsError(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.SessionStore = "redis"
	cfg.App.RedisURL = "not-a-redis-url"

	c, err := NewContainer(context.Background(), cfg, Options{Logger: logger.NewNop()})

	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestContainer_ReleaseRunsClosersOnce(t *testing.T) {
	var order []int
	c := &Container{Logger: logger.NewNop()}
	c.closers = append(c.closers,
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	)

	c.release()
	c.Close()

	assert.Equal(t, []int{2, 1}, order)
}
