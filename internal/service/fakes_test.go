package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/repository/contract"
	"autostream-assistant/internal/repository/specification"
	"autostream-assistant/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// fakeFactory is an in-memory unit of work shared by every NewUnitOfWork call.
type fakeFactory struct {
	mu        sync.Mutex
	leads     []*entity.Lead
	knowledge []*entity.KnowledgeEmbedding
	commits   int
	rollbacks int
	failWrite error
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{f: f}
}

type fakeUow struct {
	f      *fakeFactory
	active bool
}

func (u *fakeUow) Begin(ctx context.Context) error {
	if u.active {
		return errors.New("transaction already started")
	}
	u.active = true
	return nil
}

func (u *fakeUow) Commit() error {
	if !u.active {
		return errors.New("no transaction to commit")
	}
	u.active = false
	u.f.mu.Lock()
	u.f.commits++
	u.f.mu.Unlock()
	return nil
}

func (u *fakeUow) Rollback() error {
	if !u.active {
		return errors.New("no transaction to rollback")
	}
	u.active = false
	u.f.mu.Lock()
	u.f.rollbacks++
	u.f.mu.Unlock()
	return nil
}

func (u *fakeUow) LeadRepository() contract.LeadRepository {
	return &fakeLeadRepo{f: u.f}
}

func (u *fakeUow) KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository {
	return &fakeKnowledgeRepo{f: u.f}
}

type fakeLeadRepo struct{ f *fakeFactory }

func (r *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.failWrite != nil {
		return r.f.failWrite
	}
	lead.Id = uuid.New()
	copied := *lead
	r.f.leads = append(r.f.leads, &copied)
	return nil
}

// FindOne understands LeadBySession only.
func (r *fakeLeadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, spec := range specs {
		if bySession, ok := spec.(specification.LeadBySession); ok {
			for _, l := range r.f.leads {
				if l.SessionId == bySession.SessionId {
					copied := *l
					return &copied, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return append([]*entity.Lead(nil), r.f.leads...), nil
}

func (r *fakeLeadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.leads)), nil
}

type fakeKnowledgeRepo struct{ f *fakeFactory }

func (r *fakeKnowledgeRepo) ReplaceAll(ctx context.Context, embeddingModel string, embeddings []*entity.KnowledgeEmbedding) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.failWrite != nil {
		return r.f.failWrite
	}
	kept := r.f.knowledge[:0]
	for _, e := range r.f.knowledge {
		if e.EmbeddingModel != embeddingModel {
			kept = append(kept, e)
		}
	}
	for _, e := range embeddings {
		e.EmbeddingModel = embeddingModel
		kept = append(kept, e)
	}
	r.f.knowledge = kept
	return nil
}

func (r *fakeKnowledgeRepo) Count(ctx context.Context, embeddingModel string) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var n int64
	for _, e := range r.f.knowledge {
		if e.EmbeddingModel == embeddingModel {
			n++
		}
	}
	return n, nil
}

func (r *fakeKnowledgeRepo) SearchSimilarWithScore(ctx context.Context, vec []float32, limit int, embeddingModel string) ([]*entity.ScoredKnowledgeEmbedding, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	var out []*entity.ScoredKnowledgeEmbedding
	for _, e := range r.f.knowledge {
		if e.EmbeddingModel != embeddingModel {
			continue
		}
		var sim float64
		for i := range vec {
			if i < len(e.EmbeddingValue) {
				sim += float64(vec[i]) * float64(e.EmbeddingValue[i])
			}
		}
		out = append(out, &entity.ScoredKnowledgeEmbedding{Embedding: e, Similarity: sim})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
