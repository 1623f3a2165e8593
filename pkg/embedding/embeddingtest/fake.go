// Package embeddingtest provides a deterministic embedding provider for tests.
package embeddingtest

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrFailing = errors.New("embeddingtest: provider failure")

// KeywordProvider embeds a text as a bag of keyword hits: dimension i is the number of
// times Keywords[i] occurs in the lower-cased text. Unknown text maps to the zero vector.
type KeywordProvider struct {
	Keywords []string
	Fail     bool

	mu    sync.Mutex
	calls []string
}

func NewKeywordProvider(keywords ...string) *KeywordProvider {
	return &KeywordProvider{Keywords: keywords}
}

func (p *KeywordProvider) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	p.mu.Lock()
	p.calls = append(p.calls, taskType+":"+text)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Fail {
		return nil, ErrFailing
	}

	lower := strings.ToLower(text)
	vec := make([]float32, len(p.Keywords))
	for i, kw := range p.Keywords {
		vec[i] = float32(strings.Count(lower, strings.ToLower(kw)))
	}
	return vec, nil
}

func (p *KeywordProvider) Name() string {
	return "keyword-fake"
}

// Calls returns "taskType:text" for every Embed call in order.
func (p *KeywordProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}
