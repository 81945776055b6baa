package upload

import (
	"context"
	"sync"

	"drivergate/pkg/platform/sentinel"
)

type blob struct {
	data        []byte
	contentType string
}

// InMemoryStore keeps blobs in a map. Backs tests and local runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

var _ BlobStore = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string]blob)}
}

func (s *InMemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, "", sentinel.ErrNotFound
	}
	return append([]byte(nil), b.data...), b.contentType, nil
}
