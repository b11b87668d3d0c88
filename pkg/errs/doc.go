// Package errs defines the error taxonomy shared by the entitlement packages.
//
// Every error produced by this module belongs to one of a closed set of kinds:
//
//   - KindConfigurationInvalid: malformed static configuration (plan catalog).
//     Fatal at startup.
//   - KindNotFound: a plan, user or identity does not exist where the caller
//     required one.
//   - KindPreconditionFailed: a named business rule rejected the operation
//     (SSO disabled, not a member, identity already linked).
//   - KindCollaboratorFailure: an error returned by the database, payment
//     provider, email provider or audit log, passed through unchanged.
//
// Packages declare their sentinels with New and raise them with WithInfo, so
// errors.Is matches on the stable Code while the raised value carries
// structured details:
//
//	var ErrSSODisabled = errs.New(errs.KindPreconditionFailed, "group_sso_disabled", "SSO is disabled for group")
//
//	return errs.WithInfo(ErrSSODisabled, map[string]any{"group_id": id})
//
// Callers switch on the kind instead of walking type hierarchies:
//
//	switch errs.KindOf(err) {
//	case errs.KindPreconditionFailed:
//		// render a specific message
//	case errs.KindCollaboratorFailure:
//		// 5xx
//	}
package errs
