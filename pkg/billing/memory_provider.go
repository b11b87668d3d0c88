package billing

import (
	"context"
	"sync"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

var ErrNotFound = errs.New(errs.KindNotFound, "billing_record_not_found", "billing record not found")

// MemoryProvider serves fixed records. cmd falls back to it when no Paddle
// key is configured so the worker can run locally.
type MemoryProvider struct {
	mu            sync.RWMutex
	subscriptions map[string]Subscription
	accounts      map[string]Account
	coupons       map[string]Coupon
}

var _ Provider = (*MemoryProvider)(nil)

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		subscriptions: make(map[string]Subscription),
		accounts:      make(map[string]Account),
		coupons:       make(map[string]Coupon),
	}
}

func (m *MemoryProvider) PutSubscription(s Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions[s.ID] = s
}

func (m *MemoryProvider) PutAccount(a Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = a
}

func (m *MemoryProvider) PutCoupon(c Coupon) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coupons[c.Code] = c
}

func (m *MemoryProvider) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subscriptions[subscriptionID]
	if !ok {
		return nil, errs.WithInfo(ErrNotFound, map[string]any{"subscriptionId": subscriptionID})
	}
	return &s, nil
}

func (m *MemoryProvider) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, errs.WithInfo(ErrNotFound, map[string]any{"accountId": accountID})
	}
	return &a, nil
}

func (m *MemoryProvider) GetCoupon(ctx context.Context, couponID string) (*Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.coupons[couponID]
	if !ok {
		return nil, errs.WithInfo(ErrNotFound, map[string]any{"couponId": couponID})
	}
	return &c, nil
}
