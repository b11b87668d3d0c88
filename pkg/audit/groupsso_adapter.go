package audit

import (
	"context"

	"github.com/dmitrymomot/entitlements/pkg/groupsso"
)

// GroupSSOAdapter lets a Logger serve as the group enrollment audit collaborator.
type GroupSSOAdapter struct {
	logger Logger
}

var _ groupsso.AuditLogger = (*GroupSSOAdapter)(nil)

// NewGroupSSOAdapter wraps l. Panics if l is nil.
func NewGroupSSOAdapter(l Logger) *GroupSSOAdapter {
	if l == nil {
		panic("audit: logger cannot be nil")
	}
	return &GroupSSOAdapter{logger: l}
}

func (a *GroupSSOAdapter) AddEntry(ctx context.Context, entry groupsso.AuditEntry) error {
	return a.logger.Log(ctx, entry.UserID, entry.Operation,
		WithInitiator(entry.InitiatorID),
		WithIPAddress(entry.IPAddress),
		WithInfo(entry.Info),
	)
}
