package links

import (
	"context"
	"fmt"
	"sync"
)

// MockedRedisStore is an in-memory Store for tests.
type MockedRedisStore struct {
	mu        sync.Mutex
	snapshots map[string]*LinkSnapshot
}

func (s *MockedRedisStore) AddLink(_ context.Context, key string, snapshot *LinkSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshots == nil {
		s.snapshots = map[string]*LinkSnapshot{}
	}
	s.snapshots[key] = snapshot
	return nil
}

func (s *MockedRedisStore) GetLink(_ context.Context, key string) (*LinkSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[key]
	if !ok {
		return nil, fmt.Errorf("link snapshot for key %s does not exist", key)
	}
	return snapshot, nil
}

func (s *MockedRedisStore) DeleteLink(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}
