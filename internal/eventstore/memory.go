package eventstore

import (
	"context"
	"sync"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// MemoryStore is an in-process Store implementation, used by tests and by
// any caller that does not need durability across process restarts.
type MemoryStore struct {
	mu     sync.Mutex
	events []model.Event
}

// NewMemoryStore returns an empty in-memory event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(_ context.Context, events ...model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MemoryStore) Events(_ context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events), nil
}

func (m *MemoryStore) Close() error { return nil }
