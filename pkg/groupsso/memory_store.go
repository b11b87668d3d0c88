package groupsso

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// MemoryStore is an in-process Store for tests and local development.
// It counts LinkIdentity calls so callers can assert that nothing was written.
type MemoryStore struct {
	mu            sync.Mutex
	subscriptions map[string]Subscription
	ssoConfigs    map[string]SSOConfig
	users         map[string]User
	links         int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscriptions: make(map[string]Subscription),
		ssoConfigs:    make(map[string]SSOConfig),
		users:         make(map[string]User),
	}
}

func (s *MemoryStore) PutSubscription(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.MemberIDs = slices.Clone(sub.MemberIDs)
	s.subscriptions[sub.ID] = sub
}

func (s *MemoryStore) PutSSOConfig(cfg SSOConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ssoConfigs[cfg.ID] = cfg
}

func (s *MemoryStore) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = cloneUser(u)
}

// Links returns how many times LinkIdentity wrote to a user.
func (s *MemoryStore) Links() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links
}

func (s *MemoryStore) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[subscriptionID]
	if !ok {
		return nil, errs.WithInfo(ErrSubscriptionNotFound, map[string]any{"subscriptionId": subscriptionID})
	}
	sub.MemberIDs = slices.Clone(sub.MemberIDs)
	return &sub, nil
}

func (s *MemoryStore) GetSSOConfig(ctx context.Context, ssoConfigID string) (*SSOConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.ssoConfigs[ssoConfigID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, userID string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, errs.WithInfo(ErrUserNotFound, map[string]any{"userId": userID})
	}
	c := cloneUser(u)
	return &c, nil
}

func (s *MemoryStore) FindUserByIdentity(ctx context.Context, providerID, externalUserID, userIDAttribute string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		for _, id := range u.SAMLIdentifiers {
			if id.ProviderID == providerID && id.ExternalUserID == externalUserID && id.UserIDAttribute == userIDAttribute {
				c := cloneUser(u)
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (s *MemoryStore) LinkIdentity(ctx context.Context, userID string, identity Identity, marker EnrollmentMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	u.SAMLIdentifiers = append(u.SAMLIdentifiers, identity)
	u.SSOEnrollments = append(u.SSOEnrollments, marker)
	s.users[userID] = u
	s.links++
	return nil
}

func cloneUser(u User) User {
	u.SAMLIdentifiers = slices.Clone(u.SAMLIdentifiers)
	u.SSOEnrollments = slices.Clone(u.SSOEnrollments)
	return u
}
