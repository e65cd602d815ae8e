package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	perr "tailortalk/internal/platform/errors"
)

// MemStore is a process-local Store. It backs tests and the default
// backend when no external calendar is configured.
type MemStore struct {
	mu     sync.RWMutex
	events map[string]Event
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{events: make(map[string]Event)}
}

func (m *MemStore) Insert(_ context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.events[ev.ID]; exists {
		return perr.Conflictf("memstore: duplicate event id %s", ev.ID)
	}
	m.events[ev.ID] = ev
	return nil
}

func (m *MemStore) ListBetween(_ context.Context, from, to time.Time) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Event
	for _, ev := range m.events {
		if ev.Start.Before(to) && ev.End.After(from) {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *MemStore) ListFrom(_ context.Context, from time.Time, limit int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Event
	for _, ev := range m.events {
		if !ev.Start.Before(from) {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) Update(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.events[ev.ID]; !exists {
		return perr.NotFoundf("memstore: event %s", ev.ID)
	}
	m.events[ev.ID] = ev
	return nil
}

func (m *MemStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.events[id]; !exists {
		return perr.NotFoundf("memstore: event %s", id)
	}
	delete(m.events, id)
	return nil
}

func sortByStart(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}
