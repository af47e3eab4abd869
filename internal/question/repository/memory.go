package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/questionboard/questionboard/internal/question"
)

// MemoryRepo keeps questions in process memory. Used by tests and by the
// single-node development setup (STORE_DRIVER=memory).
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	store  map[int64]*question.Question
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[int64]*question.Question)}
}

func (m *MemoryRepo) Create(_ context.Context, q *question.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	q.ID = m.nextID
	cp := *q
	m.store[q.ID] = &cp
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, id int64) (*question.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.store[id]
	if !ok {
		return nil, question.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *MemoryRepo) List(_ context.Context, f question.Filter) ([]*question.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*question.Question, 0, len(m.store))
	for _, q := range m.store {
		if f.Status != nil && q.Status != *f.Status {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) UpdateStatus(_ context.Context, id int64, status question.Status, updatedAt time.Time) (*question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.store[id]
	if !ok {
		return nil, question.ErrNotFound
	}
	q.Status = status
	q.UpdatedAt = updatedAt
	cp := *q
	return &cp, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return question.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) Ping(context.Context) error { return nil }
