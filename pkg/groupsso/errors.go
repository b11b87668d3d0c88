package groupsso

import "github.com/dmitrymomot/entitlements/pkg/errs"

// Reasons carried in the info of ErrIdentityExists.
const (
	ReasonAlreadyEnrolled = "already_enrolled"
	ReasonIdentityTaken   = "identity_taken"
)

var (
	ErrSSODisabled              = errs.New(errs.KindPreconditionFailed, "sso_disabled", "SSO is disabled for this group")
	ErrIdentityNotFoundForLogin = errs.New(errs.KindPreconditionFailed, "identity_not_found_for_login", "user is not a member of this group")
	ErrIdentityExists           = errs.New(errs.KindPreconditionFailed, "identity_exists", "identity is already linked for this group")
	ErrSubscriptionNotFound     = errs.New(errs.KindNotFound, "groupsso_subscription_not_found", "group subscription not found")
	ErrUserNotFound             = errs.New(errs.KindNotFound, "groupsso_user_not_found", "user not found")

	// ErrEnrollmentAuditFailed means the identity was linked but the audit
	// entry could not be written. The enrollment is committed.
	ErrEnrollmentAuditFailed = errs.New(errs.KindCollaboratorFailure, "enrollment_audit_failed", "user enrolled but audit log entry failed")
)
