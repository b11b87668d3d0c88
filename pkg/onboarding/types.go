package onboarding

import (
	"context"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/plans"
	"github.com/dmitrymomot/entitlements/pkg/queue"
)

// FieldOnboardingEmailSentAt is the users field stamped after sending.
const FieldOnboardingEmailSentAt = "onboardingEmailSentAt"

// OnboardingEmailTask is the queued payload of a delayed onboarding email.
type OnboardingEmailTask struct {
	UserID string `json:"user_id"`
}

// User is the slice of the user record the emails need.
type User struct {
	ID                    string
	Email                 string
	FirstName             string
	OnboardingEmailSentAt *time.Time
}

// UserStore reads recipients and records delivery.
type UserStore interface {
	// GetUser returns ErrUserNotFound when no user has userID.
	GetUser(ctx context.Context, userID string) (User, error)
	MarkOnboardingEmailSent(ctx context.Context, userID string, at time.Time) error
}

// Scheduler enqueues delayed tasks. *queue.Enqueuer satisfies it.
type Scheduler interface {
	Enqueue(ctx context.Context, payload any, opts ...queue.EnqueueOption) (*queue.Task, error)
}

// PlanFinder looks plans up by code. *plans.Catalog satisfies it.
type PlanFinder interface {
	Find(code string) (plans.Plan, bool)
}
