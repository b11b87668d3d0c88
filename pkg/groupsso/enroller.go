package groupsso

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/logger"
)

// Enroller links users into a group subscription's SSO federation.
type Enroller struct {
	store  Store
	audit  AuditLogger
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Enroller.
type Option func(*Enroller)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Enroller) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source for link timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Enroller) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEnroller creates an Enroller. Panics if store or audit is nil.
func NewEnroller(store Store, audit AuditLogger, opts ...Option) *Enroller {
	if store == nil {
		panic("groupsso: store cannot be nil")
	}
	if audit == nil {
		panic("groupsso: audit logger cannot be nil")
	}

	e := &Enroller{
		store:  store,
		audit:  audit,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("groupsso"))
	return e
}

// EnrollInSubscription checks, in order, that the group's SSO is enabled, that
// the user is a member, that the user is not enrolled yet and that nobody else
// holds the external identity. Nothing is written unless all checks pass.
//
// If the audit entry fails after the identity is linked, the returned error
// matches ErrEnrollmentAuditFailed: the user is enrolled and a retry will
// fail with ErrIdentityExists.
func (e *Enroller) EnrollInSubscription(ctx context.Context, req EnrollRequest) error {
	log := e.logger.With(logger.UserID(req.UserID), logger.GroupID(req.SubscriptionID))

	sub, err := e.store.GetSubscription(ctx, req.SubscriptionID)
	if err != nil {
		return errs.Collaborator("get subscription", err)
	}

	ssoConfig, err := e.store.GetSSOConfig(ctx, sub.SSOConfigID)
	if err != nil {
		return errs.Collaborator("get sso config", err)
	}
	if ssoConfig == nil || !ssoConfig.Enabled {
		log.InfoContext(ctx, "group sso enrollment rejected: sso disabled")
		return errs.WithInfo(ErrSSODisabled, map[string]any{"groupId": sub.ID})
	}

	if !sub.IsMember(req.UserID) {
		log.InfoContext(ctx, "group sso enrollment rejected: not a member")
		return errs.WithInfo(ErrIdentityNotFoundForLogin, map[string]any{"groupId": sub.ID})
	}

	user, err := e.store.GetUser(ctx, req.UserID)
	if err != nil {
		return errs.Collaborator("get user", err)
	}
	if IsEnrolled(user, sub.ID) {
		log.InfoContext(ctx, "group sso enrollment rejected: already enrolled")
		return errs.WithInfo(ErrIdentityExists, map[string]any{"reason": ReasonAlreadyEnrolled, "groupId": sub.ID})
	}

	providerID := ProviderID(sub.ID)
	holder, err := e.store.FindUserByIdentity(ctx, providerID, req.ExternalUserID, req.UserIDAttribute)
	if err != nil {
		return errs.Collaborator("find user by identity", err)
	}
	if holder != nil {
		log.InfoContext(ctx, "group sso enrollment rejected: identity taken", slog.String("holder_id", holder.ID))
		return errs.WithInfo(ErrIdentityExists, map[string]any{"reason": ReasonIdentityTaken, "groupId": sub.ID})
	}

	linkedAt := e.now().UTC()
	identity := Identity{
		ProviderID:      providerID,
		ExternalUserID:  req.ExternalUserID,
		UserIDAttribute: req.UserIDAttribute,
		LinkedAt:        linkedAt,
	}
	marker := EnrollmentMarker{GroupID: sub.ID, LinkedAt: linkedAt, Primary: true}

	if err := e.store.LinkIdentity(ctx, req.UserID, identity, marker); err != nil {
		log.ErrorContext(ctx, "failed to link group sso identity", logger.Error(err))
		return errs.Collaborator("link identity", err)
	}

	entry := AuditEntry{
		UserID:      req.UserID,
		Operation:   AuditOperationLink,
		InitiatorID: req.AuditLog.InitiatorID,
		IPAddress:   req.AuditLog.IPAddress,
		Info:        map[string]any{"providerId": providerID},
	}
	if err := e.audit.AddEntry(ctx, entry); err != nil {
		log.ErrorContext(ctx, "user enrolled in group sso but audit entry failed", logger.Error(err))
		return errs.Wrap(ErrEnrollmentAuditFailed, err, map[string]any{"providerId": providerID})
	}

	log.InfoContext(ctx, "user enrolled in group sso", slog.String("provider_id", providerID))
	return nil
}
