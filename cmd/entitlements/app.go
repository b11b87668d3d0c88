package main

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/entitlements/pkg/audit"
	"github.com/dmitrymomot/entitlements/pkg/billing"
	"github.com/dmitrymomot/entitlements/pkg/config"
	"github.com/dmitrymomot/entitlements/pkg/email"
	"github.com/dmitrymomot/entitlements/pkg/environment"
	"github.com/dmitrymomot/entitlements/pkg/feature"
	"github.com/dmitrymomot/entitlements/pkg/features"
	"github.com/dmitrymomot/entitlements/pkg/groupsso"
	"github.com/dmitrymomot/entitlements/pkg/logger"
	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
	"github.com/dmitrymomot/entitlements/pkg/onboarding"
	"github.com/dmitrymomot/entitlements/pkg/plans"
	"github.com/dmitrymomot/entitlements/pkg/queue"
	"github.com/dmitrymomot/entitlements/pkg/subscription"
)

type appConfig struct {
	Env          environment.Config
	Mongo        mongox.Config
	Email        email.Config
	Paddle       billing.PaddleConfig
	Webhook      subscription.WebhookConfig
	Features     features.Config
	Onboarding   onboarding.Config
	Plans        plans.Config
	Queue        queue.Config
	Subscription subscription.Config
}

// app holds the wired services shared by the commands.
type app struct {
	cfg          appConfig
	log          *slog.Logger
	db           *mongo.Database
	catalog      *plans.Catalog
	classifier   *plans.Classifier
	updater      *features.Updater
	enroller     *groupsso.Enroller
	onboarding   *onboarding.Service
	subscription *subscription.Service
	tasks        *queue.MongoStorage
	enqueuer     *queue.Enqueuer
}

func loadCatalog(ctx context.Context, log *slog.Logger) (*plans.Catalog, *plans.FeatureSetMatcher, error) {
	var cfg plans.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}
	catalog, matcher, err := plans.LoadCatalog(ctx, plans.NewFileSource(cfg.PlansFile))
	if err != nil {
		log.ErrorContext(ctx, "invalid plan catalog",
			slog.String("path", cfg.PlansFile), logger.ErrorKind(err), logger.Error(err))
		return nil, nil, err
	}
	return catalog, matcher, nil
}

func newApp(ctx context.Context, log *slog.Logger) (*app, func(), error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	catalog, matcher, err := loadCatalog(ctx, log)
	if err != nil {
		return nil, nil, err
	}

	db, err := mongox.NewWithDatabase(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from mongodb", logger.Error(err))
		}
	}

	a := &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		catalog:    catalog,
		classifier: plans.NewClassifier(catalog, matcher),
		updater:    features.NewUpdater(features.NewMongoStore(db), cfg.Features, features.WithLogger(log)),
		tasks:      queue.NewMongoStorage(db),
	}

	auditLog := audit.NewLogger(audit.NewMongoStorage(db))
	a.enroller = groupsso.NewEnroller(groupsso.NewMongoStore(db), audit.NewGroupSSOAdapter(auditLog),
		groupsso.WithLogger(log))

	if err := a.tasks.EnsureIndexes(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	a.enqueuer, err = queue.NewEnqueuer(a.tasks, queue.WithDefaultQueue(cfg.Queue.Queue))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	sender, err := newEmailSender(cfg.Email, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	flags, err := feature.NewMemoryProvider(cfg.Onboarding.Flag())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	a.onboarding = onboarding.NewService(onboarding.NewMongoStore(db), sender, a.enqueuer, flags, catalog,
		cfg.Onboarding, onboarding.WithLogger(log))

	provider, err := newBillingProvider(cfg.Paddle, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	a.subscription = subscription.NewService(provider, catalog, a.classifier, a.updater, cfg.Subscription,
		subscription.WithLogger(log), subscription.WithOnboarder(a.onboarding))

	if err := mongox.Healthcheck(db.Client())(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

func newEmailSender(cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.PostmarkEnabled() {
		return email.NewPostmarkClient(cfg)
	}
	log.Warn("postmark is not configured, writing emails to disk", slog.String("dir", cfg.DevOutputDir))
	return email.NewDevSender(cfg.DevOutputDir), nil
}

func newBillingProvider(cfg billing.PaddleConfig, log *slog.Logger) (billing.Provider, error) {
	provider, err := billing.NewPaddleProvider(cfg)
	if errors.Is(err, billing.ErrMissingAPIKey) {
		log.Warn("paddle is not configured, subscriptions are read from memory")
		return billing.NewMemoryProvider(), nil
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (a *app) newWorker() (*queue.Worker, error) {
	env := environment.Parse(a.cfg.Env.Env)
	opts := append(a.cfg.Queue.WorkerOptions(),
		queue.WithWorkerLogger(a.log),
		queue.WithTaskContext(func(ctx context.Context) context.Context {
			return environment.WithContext(ctx, env)
		}),
	)
	w, err := queue.NewWorker(a.tasks, opts...)
	if err != nil {
		return nil, err
	}
	w.RegisterHandlers(a.subscription.Handler(), a.onboarding.Handler())
	return w, nil
}
