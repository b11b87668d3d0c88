package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/email"
	"github.com/dmitrymomot/entitlements/pkg/email/templates"
	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/feature"
	"github.com/dmitrymomot/entitlements/pkg/formatters"
	"github.com/dmitrymomot/entitlements/pkg/logger"
	"github.com/dmitrymomot/entitlements/pkg/queue"
)

// Service schedules and sends onboarding emails.
type Service struct {
	users     UserStore
	sender    email.EmailSender
	scheduler Scheduler
	flags     feature.Provider
	plans     PlanFinder
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
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

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. Panics on nil dependencies.
func NewService(users UserStore, sender email.EmailSender, scheduler Scheduler, flags feature.Provider, plans PlanFinder, cfg Config, opts ...Option) *Service {
	switch {
	case users == nil:
		panic("onboarding: user store cannot be nil")
	case sender == nil:
		panic("onboarding: email sender cannot be nil")
	case scheduler == nil:
		panic("onboarding: scheduler cannot be nil")
	case flags == nil:
		panic("onboarding: feature provider cannot be nil")
	case plans == nil:
		panic("onboarding: plan finder cannot be nil")
	}

	s := &Service{
		users:     users,
		sender:    sender,
		scheduler: scheduler,
		flags:     flags,
		plans:     plans,
		cfg:       cfg,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("onboarding"))
	return s
}

// ScheduleOnboardingEmail enqueues the onboarding email for userID after
// the configured delay. It does nothing while the onboarding_emails flag is
// off for the user.
func (s *Service) ScheduleOnboardingEmail(ctx context.Context, userID string) error {
	enabled, err := s.flags.IsEnabled(feature.WithUserID(ctx, userID), feature.FlagOnboardingEmails)
	if err != nil && !errors.Is(err, feature.ErrFlagNotFound) {
		return errs.Collaborator("feature.IsEnabled", err)
	}
	if !enabled {
		s.logger.DebugContext(ctx, "onboarding emails disabled", logger.UserID(userID))
		return nil
	}

	task, err := s.scheduler.Enqueue(ctx, OnboardingEmailTask{UserID: userID}, queue.WithDelay(s.cfg.Delay))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to schedule onboarding email", logger.UserID(userID), logger.Error(err))
		return errs.Collaborator("queue.Enqueue", err)
	}

	s.logger.InfoContext(ctx, "onboarding email scheduled",
		logger.UserID(userID),
		logger.TaskID(task.ID),
		slog.Time("scheduled_at", task.ScheduledAt))
	return nil
}

// SendOnboardingEmail is the queue handler for OnboardingEmailTask. Users
// that no longer exist or were already emailed are skipped.
func (s *Service) SendOnboardingEmail(ctx context.Context, task OnboardingEmailTask) error {
	user, err := s.users.GetUser(ctx, task.UserID)
	if errors.Is(err, ErrUserNotFound) {
		s.logger.InfoContext(ctx, "skipping onboarding email for missing user", logger.UserID(task.UserID))
		return nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load user", logger.UserID(task.UserID), logger.Error(err))
		return errs.Collaborator("users.GetUser", err)
	}
	if user.OnboardingEmailSentAt != nil {
		return nil
	}

	body, err := templates.Render(ctx, onboardingEmail(user, s.cfg.SiteURL))
	if err != nil {
		return errs.Collaborator("templates.Render", err)
	}
	if err := s.send(ctx, user, onboardingSubject, body, tagOnboarding); err != nil {
		return err
	}

	if err := s.users.MarkOnboardingEmailSent(ctx, user.ID, s.now()); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark onboarding email sent", logger.UserID(user.ID), logger.Error(err))
		return errs.Collaborator("users.MarkOnboardingEmailSent", err)
	}

	s.logger.InfoContext(ctx, "onboarding email sent", logger.UserID(user.ID))
	return nil
}

// SendTrialOnboardingEmail sends the trial welcome email for planCode.
// An unknown plan code fails with ErrPlanNotFound.
func (s *Service) SendTrialOnboardingEmail(ctx context.Context, userID, planCode string) error {
	plan, ok := s.plans.Find(planCode)
	if !ok {
		return errs.WithInfo(ErrPlanNotFound, map[string]any{"plan_code": planCode})
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load user", logger.UserID(userID), logger.Error(err))
		return errs.Collaborator("users.GetUser", err)
	}

	trial := trialDetails{
		PlanName: plan.Name,
		TrialEnd: formatters.FormatDate(s.now().AddDate(0, 0, plan.TrialDays)),
		Price:    formatters.FormatPrice(plan.Price(), s.cfg.Currency, s.cfg.Locale),
	}
	body, err := templates.Render(ctx, trialOnboardingEmail(user, trial, s.cfg.SiteURL))
	if err != nil {
		return errs.Collaborator("templates.Render", err)
	}
	if err := s.send(ctx, user, trialSubject(plan.Name), body, tagTrial); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "trial onboarding email sent", logger.UserID(user.ID), logger.PlanCode(planCode))
	return nil
}

// Handler returns the queue handler for OnboardingEmailTask.
func (s *Service) Handler() queue.Handler {
	return queue.NewTaskHandler(s.SendOnboardingEmail)
}

func (s *Service) send(ctx context.Context, user User, subject, body, tag string) error {
	err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   user.Email,
		Subject:  subject,
		BodyHTML: body,
		Tag:      tag,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to send email", logger.UserID(user.ID), slog.String("tag", tag), logger.Error(err))
		return errs.Collaborator("email.SendEmail", err)
	}
	return nil
}
