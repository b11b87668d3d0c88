package groupsso

import (
	"context"
	"time"
)

// ProviderIDPrefix namespaces identities federated through a group subscription.
const ProviderIDPrefix = "ol-group-subscription-id:"

// AuditOperationLink is the audit action recorded on successful enrollment.
const AuditOperationLink = "group-sso-link"

// ProviderID returns the federation provider id of a group subscription.
func ProviderID(subscriptionID string) string {
	return ProviderIDPrefix + subscriptionID
}

// Subscription is the part of a group subscription enrollment needs.
type Subscription struct {
	ID          string
	PlanCode    string
	GroupPlan   bool
	MemberIDs   []string
	SSOConfigID string
}

// IsMember reports whether userID is a current member.
func (s Subscription) IsMember(userID string) bool {
	for _, id := range s.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// SSOConfig is a group's SSO configuration.
type SSOConfig struct {
	ID      string
	Enabled bool
}

// Identity links a user to an external identity under a provider namespace.
type Identity struct {
	ProviderID      string    `bson:"providerId"`
	ExternalUserID  string    `bson:"externalUserId"`
	UserIDAttribute string    `bson:"userIdAttribute"`
	LinkedAt        time.Time `bson:"linkedAt"`
}

// EnrollmentMarker records a user's SSO enrollment in one group.
type EnrollmentMarker struct {
	GroupID  string    `bson:"groupId"`
	LinkedAt time.Time `bson:"linkedAt"`
	Primary  bool      `bson:"primary"`
}

// User is the part of a user document enrollment reads.
type User struct {
	ID              string
	Email           string
	SAMLIdentifiers []Identity
	SSOEnrollments  []EnrollmentMarker
}

// IsEnrolled reports whether user already carries an enrollment for groupID.
func IsEnrolled(user *User, groupID string) bool {
	if user == nil {
		return false
	}
	for _, m := range user.SSOEnrollments {
		if m.GroupID == groupID {
			return true
		}
	}
	return false
}

// AuditLog describes who initiated an enrollment and from where.
type AuditLog struct {
	InitiatorID string
	IPAddress   string
}

// EnrollRequest asks to enroll UserID into SubscriptionID's SSO federation.
type EnrollRequest struct {
	UserID          string
	SubscriptionID  string
	ExternalUserID  string
	UserIDAttribute string
	AuditLog        AuditLog
}

// Store is the persistence collaborator for enrollment.
type Store interface {
	// GetSubscription returns ErrSubscriptionNotFound when the group is unknown.
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)
	// GetSSOConfig returns nil, nil when the group has no SSO configuration.
	GetSSOConfig(ctx context.Context, ssoConfigID string) (*SSOConfig, error)
	// GetUser returns ErrUserNotFound when the user is unknown.
	GetUser(ctx context.Context, userID string) (*User, error)
	// FindUserByIdentity returns nil, nil when no user holds the identity.
	FindUserByIdentity(ctx context.Context, providerID, externalUserID, userIDAttribute string) (*User, error)
	// LinkIdentity attaches identity and pushes marker onto the user in one update.
	LinkIdentity(ctx context.Context, userID string, identity Identity, marker EnrollmentMarker) error
}

// AuditEntry is one append-only audit record.
type AuditEntry struct {
	UserID      string
	Operation   string
	InitiatorID string
	IPAddress   string
	Info        map[string]any
}

// AuditLogger is the audit-log collaborator.
type AuditLogger interface {
	AddEntry(ctx context.Context, entry AuditEntry) error
}
