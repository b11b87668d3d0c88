package groupsso_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/entitlements/pkg/groupsso"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetSubscription(ctx context.Context, subscriptionID string) (*groupsso.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	sub, _ := args.Get(0).(*groupsso.Subscription)
	return sub, args.Error(1)
}

func (m *mockStore) GetSSOConfig(ctx context.Context, ssoConfigID string) (*groupsso.SSOConfig, error) {
	args := m.Called(ctx, ssoConfigID)
	cfg, _ := args.Get(0).(*groupsso.SSOConfig)
	return cfg, args.Error(1)
}

func (m *mockStore) GetUser(ctx context.Context, userID string) (*groupsso.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*groupsso.User)
	return u, args.Error(1)
}

func (m *mockStore) FindUserByIdentity(ctx context.Context, providerID, externalUserID, userIDAttribute string) (*groupsso.User, error) {
	args := m.Called(ctx, providerID, externalUserID, userIDAttribute)
	u, _ := args.Get(0).(*groupsso.User)
	return u, args.Error(1)
}

func (m *mockStore) LinkIdentity(ctx context.Context, userID string, identity groupsso.Identity, marker groupsso.EnrollmentMarker) error {
	args := m.Called(ctx, userID, identity, marker)
	return args.Error(0)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) AddEntry(ctx context.Context, entry groupsso.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
