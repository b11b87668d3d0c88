package audit

import (
	"context"
	"fmt"
	"time"
)

// Event is one append-only entry of a user's audit log.
type Event struct {
	ID          string         `bson:"_id" json:"id"`
	UserID      string         `bson:"userId" json:"user_id"`
	Operation   string         `bson:"operation" json:"operation"`
	InitiatorID string         `bson:"initiatorId,omitempty" json:"initiator_id,omitempty"`
	IPAddress   string         `bson:"ipAddress,omitempty" json:"ip_address,omitempty"`
	Info        map[string]any `bson:"info,omitempty" json:"info,omitempty"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
}

// Validate checks that the event names a user and an operation.
func (e *Event) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrEventValidation)
	}
	if e.Operation == "" {
		return fmt.Errorf("%w: operation is required", ErrEventValidation)
	}
	return nil
}

// EventOption sets optional event fields.
type EventOption func(*Event)

// WithInitiator records who performed the operation.
func WithInitiator(id string) EventOption {
	return func(e *Event) { e.InitiatorID = id }
}

// WithIPAddress records the network origin of the operation.
func WithIPAddress(ip string) EventOption {
	return func(e *Event) { e.IPAddress = ip }
}

// WithInfo merges info into the event payload.
func WithInfo(info map[string]any) EventOption {
	return func(e *Event) {
		if len(info) == 0 {
			return
		}
		if e.Info == nil {
			e.Info = make(map[string]any, len(info))
		}
		for k, v := range info {
			e.Info[k] = v
		}
	}
}

// Storage persists audit events. Implementations must only append.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// Logger records audit events for users.
type Logger interface {
	Log(ctx context.Context, userID, operation string, opts ...EventOption) error
}
