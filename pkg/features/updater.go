package features

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/logger"
	"github.com/dmitrymomot/entitlements/pkg/plans"
)

// Updater writes feature bundles and reports whether they changed.
type Updater struct {
	store  Store
	epoch  string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithClock overrides the time source used for featuresUpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		if now != nil {
			u.now = now
		}
	}
}

// NewUpdater creates an Updater. Panics if store is nil.
func NewUpdater(store Store, cfg Config, opts ...Option) *Updater {
	if store == nil {
		panic("features: store cannot be nil")
	}

	u := &Updater{
		store:  store,
		epoch:  cfg.FeaturesEpoch,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.With(logger.Component("features"))
	return u
}

// UpdateFeatures writes each key of incoming onto the user's bundle, leaving
// other keys untouched. Only the incoming keys are compared when detecting a change.
func (u *Updater) UpdateFeatures(ctx context.Context, userID string, incoming plans.Features) (Result, error) {
	set := make(map[string]any, len(incoming)+2)
	for key, value := range incoming {
		set[FieldFeatures+"."+key] = value
	}
	u.stamp(set)

	previous, found, err := u.store.UpdateFeaturesReturningPrevious(ctx, userID, set)
	if err != nil {
		u.logger.ErrorContext(ctx, "failed to update user features", logger.UserID(userID), logger.Error(err))
		return Result{}, errs.Collaborator("update user features", err)
	}

	changed := found && keysChanged(previous, incoming)
	if changed {
		u.logger.InfoContext(ctx, "user features changed", logger.UserID(userID), slog.Any("features", incoming))
	} else {
		u.logger.DebugContext(ctx, "user features unchanged", logger.UserID(userID), slog.Bool("found", found))
	}

	return Result{Features: incoming.Clone(), FeaturesChanged: changed}, nil
}

// OverrideFeatures replaces the user's whole bundle with full.
func (u *Updater) OverrideFeatures(ctx context.Context, userID string, full plans.Features) (bool, error) {
	bundle := full.Clone()
	if bundle == nil {
		bundle = plans.Features{}
	}
	set := map[string]any{
		FieldFeatures:          bundle,
		FieldFeaturesUpdatedAt: u.now().UTC(),
	}

	previous, found, err := u.store.UpdateFeaturesReturningPrevious(ctx, userID, set)
	if err != nil {
		u.logger.ErrorContext(ctx, "failed to override user features", logger.UserID(userID), logger.Error(err))
		return false, errs.Collaborator("override user features", err)
	}

	changed := found && !previous.Equal(bundle)
	u.logger.InfoContext(ctx, "user features overridden", logger.UserID(userID), slog.Bool("changed", changed))
	return changed, nil
}

// CreateFeaturesOverride appends override to the user's override history.
func (u *Updater) CreateFeaturesOverride(ctx context.Context, userID string, override Override) error {
	if err := u.store.AppendFeaturesOverride(ctx, userID, override); err != nil {
		u.logger.ErrorContext(ctx, "failed to create features override", logger.UserID(userID), logger.Error(err))
		return errs.Collaborator("create features override", err)
	}
	u.logger.InfoContext(ctx, "features override created", logger.UserID(userID))
	return nil
}

// EpochIsCurrent reports whether a user's stored epoch matches the configured
// one. With no epoch configured every user is current.
func (u *Updater) EpochIsCurrent(userEpoch string) bool {
	return u.epoch == "" || userEpoch == u.epoch
}

// stamp marks a plan-driven update. Overrides never carry the epoch.
func (u *Updater) stamp(set map[string]any) {
	set[FieldFeaturesUpdatedAt] = u.now().UTC()
	if u.epoch != "" {
		set[FieldFeaturesEpoch] = u.epoch
	}
}

func keysChanged(previous, incoming plans.Features) bool {
	for key, value := range incoming {
		old, ok := previous[key]
		if !ok || !plans.ValuesEqual(old, value) {
			return true
		}
	}
	return false
}
