// Package groupsso enrolls members of a group subscription into the group's
// SSO federation.
//
// Enrollment has two states per (user, group): not enrolled and enrolled.
// EnrollInSubscription checks its preconditions in a fixed order and fails
// with a named error before writing anything:
//
//  1. ErrSSODisabled when the group's SSO configuration is missing or off.
//  2. ErrIdentityNotFoundForLogin when the user is not a group member.
//  3. ErrIdentityExists (reason already_enrolled) when the user is enrolled.
//  4. ErrIdentityExists (reason identity_taken) when another user holds the
//     external identity under the group's provider namespace.
//
// The identity link and the audit entry are two separate writes. If the audit
// write fails the user stays enrolled and the error matches
// ErrEnrollmentAuditFailed, so callers can tell it apart from a failed link.
package groupsso
