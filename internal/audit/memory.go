package audit

import (
	"context"
	"sync"

	id "drivergate/pkg/domain"
)

// InMemoryStore keeps events per record. Backs tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.RecordID][]Event
}

var _ Store = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.RecordID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.RecordID] = append(s.events[event.RecordID], event)
	return nil
}

func (s *InMemoryStore) ListByRecord(_ context.Context, recordID id.RecordID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[recordID]...), nil
}
