package store

import (
	"context"
	"sort"
	"sync"

	"drivergate/internal/driver/models"
	id "drivergate/pkg/domain"
	"drivergate/pkg/platform/sentinel"
	"drivergate/pkg/requestcontext"
)

// InMemory keeps driver records in a map guarded by a mutex. It favors
// clarity over performance and backs tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.RecordID]models.DriverRecord
}

var _ DriverStore = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.RecordID]models.DriverRecord)}
}

func (s *InMemory) Create(_ context.Context, rec *models.DriverRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *InMemory) FindByID(_ context.Context, recordID id.RecordID) (*models.DriverRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &rec, nil
}

func (s *InMemory) List(_ context.Context, status *models.Status) ([]*models.DriverRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.DriverRecord, 0, len(s.records))
	for _, rec := range s.records {
		if status != nil && rec.Status != *status {
			continue
		}
		r := rec
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			// stable order for records created in the same instant
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) Execute(ctx context.Context, recordID id.RecordID, validate func(*models.DriverRecord) error, mutate func(*models.DriverRecord)) (*models.DriverRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(&rec); err != nil {
		return nil, err
	}
	mutate(&rec)
	s.records[recordID] = rec
	return &rec, nil
}

func (s *InMemory) AdjustBalance(ctx context.Context, recordID id.RecordID, amount float64) (*models.DriverRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	rec.BonusAmount += amount
	rec.UpdatedAt = requestcontext.Now(ctx)
	s.records[recordID] = rec
	return &rec, nil
}

func (s *InMemory) Delete(_ context.Context, recordID id.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[recordID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, recordID)
	return nil
}
