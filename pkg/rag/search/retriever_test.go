package search

import (
	"context"
	"testing"

	"autostream-assistant/pkg/embedding"
	"autostream-assistant/pkg/embedding/embeddingtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var passages = []string{
	"Plan: Basic | Price: $29/month | Limits: 10 videos/month | Quality: 720p",
	"Plan: Pro | Price: $79/month | Limits: Unlimited | Quality: 4K | Features: AI captions",
	"Policies: No refunds after 7 days; 24/7 support on Pro only",
	"Product: AI video editing for creators",
}

func newIndex(t *testing.T) (*MemoryIndex, *embeddingtest.KeywordProvider) {
	t.Helper()
	p := embeddingtest.NewKeywordProvider("basic", "pro", "refund", "captions", "video")
	idx, err := BuildIndex(context.Background(), p, passages)
	require.NoError(t, err)
	return idx, p
}

func TestBuildIndex_EmbedsEveryPassageAsDocument(t *testing.T) {
	idx, p := newIndex(t)

	assert.Equal(t, len(passages), idx.Len())
	calls := p.Calls()
	require.Len(t, calls, len(passages))
	for i, c := range calls {
		assert.Equal(t, embedding.TaskRetrievalDocument+":"+passages[i], c)
	}
}

func TestMemoryIndex_Search(t *testing.T) {
	idx, _ := newIndex(t)

	tests := []struct {
		name  string
		query string
		k     int
		want  []string
	}{
		{name: "refund question", query: "what is the refund policy?", k: 1, want: []string{passages[2]}},
		{name: "captions ranks pro first", query: "AI captions", k: 1, want: []string{passages[1]}},
		{name: "k larger than index", query: "basic", k: 10},
		{name: "zero k", query: "basic", k: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Search(context.Background(), tt.query, tt.k)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Len(t, got, len(passages))
				assert.Equal(t, passages[0], got[0])
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryIndex_TiesKeepPassageOrder(t *testing.T) {
	idx, _ := newIndex(t)

	// Matches no keyword: every similarity is zero.
	got, err := idx.Search(context.Background(), "hello there", 3)

	require.NoError(t, err)
	assert.Equal(t, passages[:3], got)
}

func TestMemoryIndex_Deterministic(t *testing.T) {
	idx, _ := newIndex(t)

	first, err := idx.Search(context.Background(), "pro plan video", 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := idx.Search(context.Background(), "pro plan video", 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMemoryIndex_EmbeddingFailurePropagates(t *testing.T) {
	idx, p := newIndex(t)
	p.Fail = true

	_, err := idx.Search(context.Background(), "pricing", 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, embeddingtest.ErrFailing)
}

func TestBuildIndex_Failure(t *testing.T) {
	p := embeddingtest.NewKeywordProvider("x")
	p.Fail = true

	_, err := BuildIndex(context.Background(), p, passages)

	assert.ErrorIs(t, err, embeddingtest.ErrFailing)
}
