package billing

import (
	"context"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/plans"
)

// Provider is the read-only payment-provider collaborator.
type Provider interface {
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)
	GetAccount(ctx context.Context, accountID string) (*Account, error)
	GetCoupon(ctx context.Context, couponID string) (*Coupon, error)
}

// State is the provider-side subscription state.
type State string

const (
	StateActive   State = "active"
	StateTrialing State = "trialing"
	StatePastDue  State = "past_due"
	StatePaused   State = "paused"
	StateCanceled State = "canceled"
)

// AddOn is an add-on line of a provider subscription.
type AddOn struct {
	Code      string
	Quantity  int
	UnitPrice int64 // in the smallest currency unit
}

// PendingChange is a change scheduled for the end of the current term.
// NextAddOns follows plans.ChangeIntent: nil means the change carries no add-on list.
type PendingChange struct {
	NextPlanCode string
	NextAddOns   []AddOn
}

// Subscription is a provider subscription normalised for this module.
type Subscription struct {
	ID            string
	UserID        string
	AccountID     string
	PlanCode      string
	PlanName      string
	AddOns        []AddOn
	Currency      string
	State         State
	PendingChange *PendingChange
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
}

// Account is the provider's customer record.
type Account struct {
	ID    string
	Email string
	Name  string
}

// Coupon is a provider discount.
type Coupon struct {
	Code         string
	Name         string
	Description  string
	DiscountType string
	Amount       string
}

// HasAddOn reports whether the subscription holds code in the current period.
func (s *Subscription) HasAddOn(code string) bool {
	return hasAddOn(s.AddOns, code)
}

// HasAddOnNextPeriod reports whether code is held after the pending change,
// or now when nothing is pending.
func (s *Subscription) HasAddOnNextPeriod(code string) bool {
	if s.PendingChange == nil {
		return s.HasAddOn(code)
	}
	return hasAddOn(s.PendingChange.NextAddOns, code)
}

// IsStandaloneAiAddOn reports whether the subscription is the standalone AI plan.
func (s *Subscription) IsStandaloneAiAddOn() bool {
	return plans.IsStandaloneAiAddOnPlanCode(s.PlanCode)
}

// HasAiAssist reports whether the subscription currently grants AI assist.
func (s *Subscription) HasAiAssist() bool {
	return plans.HasAiAssist(s.PlanCode, toPlanAddOns(s.AddOns))
}

// ChangeIntent returns the pending change as a classification input, or nil.
func (s *Subscription) ChangeIntent() *plans.ChangeIntent {
	if s.PendingChange == nil {
		return nil
	}
	return &plans.ChangeIntent{
		NextPlanCode: s.PendingChange.NextPlanCode,
		NextAddOns:   toPlanAddOns(s.PendingChange.NextAddOns),
	}
}

// PendingChangeIsAiAssistUpgrade reports whether the pending change grants
// AI assist. False when nothing is pending.
func (s *Subscription) PendingChangeIsAiAssistUpgrade() bool {
	intent := s.ChangeIntent()
	return intent != nil && plans.SubscriptionChangeIsAiAssistUpgrade(*intent)
}

// PendingChangeIsAiAssistDowngrade reports whether the pending change drops
// AI assist held today. False when nothing is pending.
func (s *Subscription) PendingChangeIsAiAssistDowngrade() bool {
	intent := s.ChangeIntent()
	return intent != nil && plans.SubscriptionChangeIsAiAssistDowngrade(s.PlanCode, toPlanAddOns(s.AddOns), *intent)
}

// PlanChangeAddOns returns the add-ons to carry onto a new plan. The AI add-on
// moves with the subscription when it is held in the relevant period (the
// next one for changes at term end) or when the current plan is the
// standalone AI plan.
func (s *Subscription) PlanChangeAddOns(atTermEnd bool) []plans.AddOn {
	held := s.HasAddOn(plans.AIAddOnCode)
	if atTermEnd {
		held = s.HasAddOnNextPeriod(plans.AIAddOnCode)
	}
	if held || s.IsStandaloneAiAddOn() {
		return []plans.AddOn{{Code: plans.AIAddOnCode, Quantity: 1}}
	}
	return nil
}

func hasAddOn(addOns []AddOn, code string) bool {
	for _, a := range addOns {
		if a.Code == code {
			return true
		}
	}
	return false
}

func toPlanAddOns(addOns []AddOn) []plans.AddOn {
	if addOns == nil {
		return nil
	}
	out := make([]plans.AddOn, 0, len(addOns))
	for _, a := range addOns {
		out = append(out, plans.AddOn{Code: a.Code, Quantity: a.Quantity})
	}
	return out
}
