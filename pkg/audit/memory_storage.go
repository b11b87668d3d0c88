package audit

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStorage keeps events in memory. Use it in tests and local development.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Store(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.Info = maps.Clone(event.Info)
	s.events = append(s.events, event)
	return nil
}

// Events returns the stored events for userID in insertion order.
// An empty userID returns every event.
func (s *MemoryStorage) Events(userID string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if userID == "" {
		return slices.Clone(s.events)
	}
	var out []Event
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
