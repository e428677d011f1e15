package retrieval

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore ranks references by TF-IDF cosine similarity. It needs no
// database and is the default store.
type MemoryStore struct {
	mu       sync.RWMutex
	examples []Example
	index    *tfidfIndex
}

func NewMemoryStore(examples ...Example) *MemoryStore {
	s := &MemoryStore{}
	for _, ex := range examples {
		if ex.Validate() == nil {
			s.examples = append(s.examples, ex)
		}
	}
	s.rebuild()
	return s
}

// must hold s.mu for writing
func (s *MemoryStore) rebuild() {
	texts := make([]string, len(s.examples))
	for i, ex := range s.examples {
		texts[i] = ex.document()
	}
	s.index = buildTFIDFIndex(texts)
}

func (s *MemoryStore) Index(_ context.Context, ex Example) error {
	if err := ex.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = append(s.examples, ex)
	s.rebuild()
	return nil
}

func (s *MemoryStore) Retrieve(ctx context.Context, q Query) ([]Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	qvec := s.index.queryVec(q.Text)
	if len(qvec) == 0 {
		return nil, nil
	}
	var out []Snippet
	for i, ex := range s.examples {
		if ex.Category != q.Category {
			continue
		}
		score := cosineSim(qvec, s.index.docs[i])
		if score <= 0 {
			continue
		}
		out = append(out, Snippet{
			Category:    ex.Category,
			Pattern:     ex.Pattern,
			Replacement: ex.Replacement,
			Example:     ex.Example,
			Guidance:    ex.Guidance,
			Score:       score,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	if k := topK(q); len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.examples)
}
