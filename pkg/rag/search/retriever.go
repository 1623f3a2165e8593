package search

import (
	"context"
	"fmt"
	"sort"

	"autostream-assistant/pkg/embedding"
)

// Retriever returns up to k knowledge passages ranked by relevance to query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// ScoredPassage is a passage with its cosine similarity to the query.
type ScoredPassage struct {
	Index      int
	Text       string
	Similarity float64
}

// MemoryIndex is an exact cosine-similarity index over a fixed passage set.
// It is built once and is read-only afterwards, so it is safe for concurrent use.
type MemoryIndex struct {
	provider embedding.EmbeddingProvider
	texts    []string
	vectors  [][]float32
}

var _ Retriever = (*MemoryIndex)(nil)

// BuildIndex embeds every passage once. Any embedding failure aborts the build.
func BuildIndex(ctx context.Context, provider embedding.EmbeddingProvider, texts []string) (*MemoryIndex, error) {
	idx := &MemoryIndex{
		provider: provider,
		texts:    append([]string(nil), texts...),
		vectors:  make([][]float32, len(texts)),
	}

	for i, text := range texts {
		vec, err := provider.Embed(ctx, text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed passage %d: %w", i, err)
		}
		idx.vectors[i] = embedding.NormalizeVector(vec)
	}

	return idx, nil
}

func (m *MemoryIndex) Len() int {
	return len(m.texts)
}

func (m *MemoryIndex) Search(ctx context.Context, query string, k int) ([]string, error) {
	scored, err := m.SearchWithScore(ctx, query, k)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Text
	}
	return out, nil
}

// SearchWithScore ranks passages by cosine similarity; ties keep passage order.
func (m *MemoryIndex) SearchWithScore(ctx context.Context, query string, k int) ([]ScoredPassage, error) {
	if k <= 0 || len(m.texts) == 0 {
		return []ScoredPassage{}, nil
	}

	vec, err := m.provider.Embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	q := embedding.NormalizeVector(vec)

	scored := make([]ScoredPassage, len(m.texts))
	for i, text := range m.texts {
		scored[i] = ScoredPassage{Index: i, Text: text, Similarity: dot(q, m.vectors[i])}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Similarity > scored[b].Similarity
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}

// dot of two unit vectors is their cosine similarity. Mismatched lengths compare the common prefix.
func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
