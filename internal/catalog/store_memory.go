package catalog

import (
	"context"
	"sync"
)

type MemStore struct {
	mu      sync.RWMutex
	courses []Course
}

func NewMemStore() *MemStore {
	return &MemStore{courses: []Course{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) LoadAll(ctx context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Course, len(s.courses))
	copy(out, s.courses)
	return out, nil
}

func (s *MemStore) Append(ctx context.Context, c Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = append(s.courses, c)
	return nil
}
