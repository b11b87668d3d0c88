package subscription

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/entitlements/pkg/billing"
	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/features"
	"github.com/dmitrymomot/entitlements/pkg/logger"
	"github.com/dmitrymomot/entitlements/pkg/plans"
	"github.com/dmitrymomot/entitlements/pkg/queue"
)

// FeatureUpdater writes plan features onto a user. *features.Updater
// satisfies it.
type FeatureUpdater interface {
	UpdateFeatures(ctx context.Context, userID string, incoming plans.Features) (features.Result, error)
}

// Onboarder sends the emails that follow a new subscription.
// *onboarding.Service satisfies it.
type Onboarder interface {
	ScheduleOnboardingEmail(ctx context.Context, userID string) error
	SendTrialOnboardingEmail(ctx context.Context, userID, planCode string) error
}

// Result describes what a refresh decided.
type Result struct {
	UserID            string
	SubscriptionID    string
	PlanCode          string
	State             billing.State
	Tier              plans.TierLabel
	Professional      bool
	AiAssist          bool
	AiAssistUpgrade   bool
	AiAssistDowngrade bool
	FeaturesChanged   bool
}

// ChangedTask is the queue payload for a subscription notification.
type ChangedTask struct {
	SubscriptionID string    `json:"subscription_id"`
	Event          EventType `json:"event"`
}

// Service applies provider subscription state to user features.
type Service struct {
	provider   billing.Provider
	catalog    *plans.Catalog
	classifier *plans.Classifier
	updater    FeatureUpdater
	onboarder  Onboarder
	cfg        Config
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnboarder enables onboarding emails for new subscriptions.
func WithOnboarder(o Onboarder) Option {
	return func(s *Service) {
		s.onboarder = o
	}
}

// NewService creates a Service. Panics on nil dependencies.
func NewService(provider billing.Provider, catalog *plans.Catalog, classifier *plans.Classifier, updater FeatureUpdater, cfg Config, opts ...Option) *Service {
	switch {
	case provider == nil:
		panic("subscription: billing provider cannot be nil")
	case catalog == nil:
		panic("subscription: catalog cannot be nil")
	case classifier == nil:
		panic("subscription: classifier cannot be nil")
	case updater == nil:
		panic("subscription: feature updater cannot be nil")
	}

	s := &Service{
		provider:   provider,
		catalog:    catalog,
		classifier: classifier,
		updater:    updater,
		cfg:        cfg,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("subscription"))
	return s
}

// RefreshFeatures loads the subscription from the provider and writes the
// features of its plan onto the owning user. Canceled and paused
// subscriptions get the default plan's features.
func (s *Service) RefreshFeatures(ctx context.Context, subscriptionID string) (Result, error) {
	sub, err := s.provider.GetSubscription(ctx, subscriptionID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load subscription", logger.SubscriptionID(subscriptionID), logger.Error(err))
		return Result{}, errs.Collaborator("billing.GetSubscription", err)
	}
	if sub.UserID == "" {
		return Result{}, errs.WithInfo(ErrMissingUserID, map[string]any{"subscription_id": subscriptionID})
	}

	planCode := sub.PlanCode
	if sub.State == billing.StateCanceled || sub.State == billing.StatePaused {
		planCode = s.cfg.DefaultPlanCode
	}
	plan, ok := s.catalog.Find(planCode)
	if !ok {
		return Result{}, errs.WithInfo(ErrPlanNotFound, map[string]any{
			"plan_code":       planCode,
			"subscription_id": subscriptionID,
		})
	}

	updated, err := s.updater.UpdateFeatures(ctx, sub.UserID, plan.Features)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		UserID:            sub.UserID,
		SubscriptionID:    sub.ID,
		PlanCode:          planCode,
		State:             sub.State,
		Tier:              s.classifier.Tier(planCode),
		Professional:      s.classifier.IsProfessionalPlan(planCode),
		AiAssist:          sub.HasAiAssist(),
		AiAssistUpgrade:   sub.PendingChangeIsAiAssistUpgrade(),
		AiAssistDowngrade: sub.PendingChangeIsAiAssistDowngrade(),
		FeaturesChanged:   updated.FeaturesChanged,
	}

	s.logger.InfoContext(ctx, "subscription features refreshed",
		logger.UserID(res.UserID),
		logger.SubscriptionID(res.SubscriptionID),
		logger.PlanCode(res.PlanCode),
		slog.String("tier", string(res.Tier)),
		slog.Bool("professional", res.Professional),
		slog.Bool("ai_assist", res.AiAssist),
		slog.Bool("ai_assist_upgrade", res.AiAssistUpgrade),
		slog.Bool("ai_assist_downgrade", res.AiAssistDowngrade),
		slog.Bool("features_changed", res.FeaturesChanged))

	return res, nil
}

// HandleChange refreshes features for task. For a new paid subscription it
// also sends the trial email or schedules the onboarding email.
func (s *Service) HandleChange(ctx context.Context, task ChangedTask) error {
	res, err := s.RefreshFeatures(ctx, task.SubscriptionID)
	if err != nil {
		return err
	}
	if task.Event != EventCreated || s.onboarder == nil || res.PlanCode == s.cfg.DefaultPlanCode {
		return nil
	}
	if res.State == billing.StateTrialing {
		return s.onboarder.SendTrialOnboardingEmail(ctx, res.UserID, res.PlanCode)
	}
	return s.onboarder.ScheduleOnboardingEmail(ctx, res.UserID)
}

// Handler returns the queue handler for ChangedTask.
func (s *Service) Handler() queue.Handler {
	return queue.NewTaskHandler(s.HandleChange)
}

// TaskForEvent converts a webhook event into a queue payload. It reports
// false for events that do not concern a subscription.
func TaskForEvent(event *Event) (ChangedTask, bool) {
	if event == nil || event.Type == EventOther || event.SubscriptionID == "" {
		return ChangedTask{}, false
	}
	return ChangedTask{SubscriptionID: event.SubscriptionID, Event: event.Type}, true
}
