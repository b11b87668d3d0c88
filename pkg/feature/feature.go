package feature

import (
	"context"
	"time"
)

// FlagOnboardingEmails gates the onboarding email sent after a subscription
// starts.
const FlagOnboardingEmails = "onboarding_emails"

// Flag is a named process switch with an optional rollout strategy.
type Flag struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	Strategy    Strategy  `json:"-"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Strategy decides whether an enabled flag applies to ctx.
type Strategy interface {
	Evaluate(ctx context.Context) (bool, error)
}

// Provider resolves flags.
type Provider interface {
	// IsEnabled returns ErrFlagNotFound for unknown flags.
	IsEnabled(ctx context.Context, flagName string) (bool, error)
	GetFlag(ctx context.Context, flagName string) (*Flag, error)
	// SetFlag creates or replaces a flag.
	SetFlag(ctx context.Context, flag *Flag) error
	ListFlags(ctx context.Context) ([]*Flag, error)
}

type userIDKey struct{}

// WithUserID stores the id of the user a flag is evaluated for.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the id stored by WithUserID.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
