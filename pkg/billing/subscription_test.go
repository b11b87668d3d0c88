package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entitlements/pkg/billing"
	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/plans"
)

func TestSubscription_AddOns(t *testing.T) {
	t.Parallel()

	ai := billing.AddOn{Code: plans.AIAddOnCode, Quantity: 1}

	t.Run("current and next period", func(t *testing.T) {
		t.Parallel()

		sub := &billing.Subscription{PlanCode: "professional", AddOns: []billing.AddOn{ai}}
		assert.True(t, sub.HasAddOn(plans.AIAddOnCode))
		assert.True(t, sub.HasAddOnNextPeriod(plans.AIAddOnCode), "no pending change keeps current add-ons")

		sub.PendingChange = &billing.PendingChange{NextPlanCode: "collaborator"}
		assert.True(t, sub.HasAddOn(plans.AIAddOnCode))
		assert.False(t, sub.HasAddOnNextPeriod(plans.AIAddOnCode))
	})

	t.Run("standalone plan", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&billing.Subscription{PlanCode: "assistant-annual"}).IsStandaloneAiAddOn())
		assert.False(t, (&billing.Subscription{PlanCode: "professional"}).IsStandaloneAiAddOn())
		assert.True(t, (&billing.Subscription{PlanCode: "assistant"}).HasAiAssist())
		assert.True(t, (&billing.Subscription{PlanCode: "collaborator", AddOns: []billing.AddOn{ai}}).HasAiAssist())
		assert.False(t, (&billing.Subscription{PlanCode: "collaborator"}).HasAiAssist())
	})

	t.Run("change intent", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, (&billing.Subscription{}).ChangeIntent())

		sub := &billing.Subscription{PendingChange: &billing.PendingChange{NextPlanCode: "professional", NextAddOns: []billing.AddOn{ai}}}
		intent := sub.ChangeIntent()
		require.NotNil(t, intent)
		assert.True(t, plans.SubscriptionChangeIsAiAssistUpgrade(*intent))

		absent := (&billing.Subscription{PendingChange: &billing.PendingChange{NextPlanCode: "professional"}}).ChangeIntent()
		assert.Nil(t, absent.NextAddOns)
		assert.False(t, plans.SubscriptionChangeIsAiAssistUpgrade(*absent))
	})

	t.Run("pending change direction", func(t *testing.T) {
		t.Parallel()

		none := &billing.Subscription{PlanCode: "collaborator", AddOns: []billing.AddOn{ai}}
		assert.False(t, none.PendingChangeIsAiAssistUpgrade())
		assert.False(t, none.PendingChangeIsAiAssistDowngrade())

		dropping := &billing.Subscription{
			PlanCode:      "collaborator",
			AddOns:        []billing.AddOn{ai},
			PendingChange: &billing.PendingChange{NextPlanCode: "collaborator"},
		}
		assert.False(t, dropping.PendingChangeIsAiAssistUpgrade())
		assert.True(t, dropping.PendingChangeIsAiAssistDowngrade())

		adding := &billing.Subscription{
			PlanCode:      "collaborator",
			PendingChange: &billing.PendingChange{NextPlanCode: "assistant"},
		}
		assert.True(t, adding.PendingChangeIsAiAssistUpgrade())
		assert.False(t, adding.PendingChangeIsAiAssistDowngrade())
	})
}

func TestSubscription_PlanChangeAddOns(t *testing.T) {
	t.Parallel()

	ai := billing.AddOn{Code: plans.AIAddOnCode, Quantity: 1}
	carried := []plans.AddOn{{Code: plans.AIAddOnCode, Quantity: 1}}

	tests := []struct {
		name      string
		sub       billing.Subscription
		atTermEnd bool
		want      []plans.AddOn
	}{
		{"immediate change keeps held add-on", billing.Subscription{PlanCode: "collaborator", AddOns: []billing.AddOn{ai}}, false, carried},
		{"term-end change uses next period", billing.Subscription{
			PlanCode: "collaborator", AddOns: []billing.AddOn{ai},
			PendingChange: &billing.PendingChange{NextPlanCode: "collaborator", NextAddOns: []billing.AddOn{}},
		}, true, nil},
		{"immediate change ignores pending removal", billing.Subscription{
			PlanCode: "collaborator", AddOns: []billing.AddOn{ai},
			PendingChange: &billing.PendingChange{NextPlanCode: "collaborator", NextAddOns: []billing.AddOn{}},
		}, false, carried},
		{"standalone AI plan upgrades with add-on", billing.Subscription{PlanCode: "assistant"}, false, carried},
		{"nothing to carry", billing.Subscription{PlanCode: "collaborator"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.sub.PlanChangeAddOns(tt.atTermEnd))
		})
	}
}

func TestMemoryProvider(t *testing.T) {
	t.Parallel()

	p := billing.NewMemoryProvider()
	p.PutSubscription(billing.Subscription{ID: "sub_1", PlanCode: "professional"})
	p.PutAccount(billing.Account{ID: "ctm_1", Email: "a@example.com"})
	p.PutCoupon(billing.Coupon{Code: "WELCOME", Name: "Welcome"})

	sub, err := p.GetSubscription(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, "professional", sub.PlanCode)

	acc, err := p.GetAccount(context.Background(), "ctm_1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", acc.Email)

	coupon, err := p.GetCoupon(context.Background(), "WELCOME")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", coupon.Name)

	_, err = p.GetSubscription(context.Background(), "missing")
	assert.ErrorIs(t, err, billing.ErrNotFound)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestNewPaddleProvider_Config(t *testing.T) {
	t.Parallel()

	_, err := billing.NewPaddleProvider(billing.PaddleConfig{})
	assert.ErrorIs(t, err, billing.ErrMissingAPIKey)

	_, err = billing.NewPaddleProvider(billing.PaddleConfig{APIKey: "key", Environment: "staging"})
	assert.ErrorIs(t, err, billing.ErrInvalidEnvironment)
	assert.Equal(t, errs.KindConfigurationInvalid, errs.KindOf(err))
}
