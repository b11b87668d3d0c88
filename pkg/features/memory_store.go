package features

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/plans"
)

// MemoryUser is the in-memory representation of a user document.
type MemoryUser struct {
	Features          plans.Features
	FeaturesUpdatedAt time.Time
	FeaturesEpoch     string
	FeaturesOverrides []Override
}

// MemoryStore is a Store kept in process memory. It applies the same $set
// semantics as MongoStore and is meant for tests and local development.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*MemoryUser
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*MemoryUser)}
}

// AddUser registers a user with an initial bundle.
func (s *MemoryStore) AddUser(userID string, initial plans.Features) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = &MemoryUser{Features: initial.Clone()}
}

// User returns a copy of the stored user.
func (s *MemoryStore) User(userID string) (MemoryUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return MemoryUser{}, false
	}
	c := *u
	c.Features = u.Features.Clone()
	c.FeaturesOverrides = append([]Override(nil), u.FeaturesOverrides...)
	return c, true
}

func (s *MemoryStore) UpdateFeaturesReturningPrevious(ctx context.Context, userID string, set map[string]any) (plans.Features, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, false, nil
	}
	previous := u.Features.Clone()

	for field, value := range set {
		switch {
		case field == FieldFeatures:
			bundle, _ := value.(plans.Features)
			u.Features = maps.Clone(bundle)
		case strings.HasPrefix(field, FieldFeatures+"."):
			if u.Features == nil {
				u.Features = plans.Features{}
			}
			u.Features[strings.TrimPrefix(field, FieldFeatures+".")] = value
		case field == FieldFeaturesUpdatedAt:
			u.FeaturesUpdatedAt, _ = value.(time.Time)
		case field == FieldFeaturesEpoch:
			u.FeaturesEpoch, _ = value.(string)
		}
	}
	return previous, true, nil
}

func (s *MemoryStore) AppendFeaturesOverride(ctx context.Context, userID string, override Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An unmatched update is a no-op, as with updateOne.
	if u, ok := s.users[userID]; ok {
		u.FeaturesOverrides = append(u.FeaturesOverrides, override)
	}
	return nil
}
