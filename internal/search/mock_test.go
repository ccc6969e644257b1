package search

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeProvider returns a canned URL list and records how it was called
type fakeProvider struct {
	urls     []string
	err      error
	gotQuery string
	gotLimit int
}

func (p *fakeProvider) Search(_ context.Context, query string, limit int) ([]string, error) {
	p.gotQuery = query
	p.gotLimit = limit
	if p.err != nil {
		return nil, p.err
	}
	return p.urls, nil
}

// MockCacheService is an in-memory CacheService for tests
type MockCacheService struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{data: make(map[string][]byte)}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return value, nil
}

func (m *MockCacheService) Set(key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
