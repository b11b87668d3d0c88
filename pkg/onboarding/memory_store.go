package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// MemoryStore is an in-memory UserStore.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]User
}

// NewMemoryStore creates a store holding users.
func NewMemoryStore(users ...User) *MemoryStore {
	s := &MemoryStore{users: make(map[string]User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// GetUser implements UserStore.
func (s *MemoryStore) GetUser(_ context.Context, userID string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return User{}, errs.WithInfo(ErrUserNotFound, map[string]any{"user_id": userID})
	}
	return u, nil
}

// MarkOnboardingEmailSent implements UserStore.
func (s *MemoryStore) MarkOnboardingEmailSent(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return errs.WithInfo(ErrUserNotFound, map[string]any{"user_id": userID})
	}
	u.OnboardingEmailSentAt = &at
	s.users[userID] = u
	return nil
}
