package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type logger struct {
	storage Storage
	now     func() time.Time
}

// Option configures the logger.
type Option func(*logger)

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates an audit logger over storage. Panics if storage is nil.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log validates and stores one event. Storage errors are returned as is.
func (l *logger) Log(ctx context.Context, userID, operation string, opts ...EventOption) error {
	event := Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Operation: operation,
		Timestamp: l.now().UTC(),
	}
	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}
	return l.storage.Store(ctx, event)
}
