package sequence

import (
	"context"
	"sync/atomic"
)

// InMemory issues ids from a process-local atomic counter. Correct for
// a single process only; real deployments use the Postgres or Redis
// issuer.
type InMemory struct {
	counter atomic.Int64
}

var _ Issuer = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Next(context.Context) (string, error) {
	return Format(s.counter.Add(1)), nil
}
