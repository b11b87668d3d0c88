package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// WebhookConfig holds the Paddle notification secret.
type WebhookConfig struct {
	Secret string `env:"PADDLE_WEBHOOK_SECRET"`
}

// EventType is a normalised provider event.
type EventType string

const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventCanceled EventType = "canceled"
	EventPaused   EventType = "paused"
	EventResumed  EventType = "resumed"
	EventOther    EventType = "other"
)

// Event is a verified subscription notification.
type Event struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	ProviderEvent  string    `json:"provider_event"`
	SubscriptionID string    `json:"subscription_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type signatureVerifier interface {
	Verify(req *http.Request) (bool, error)
}

// WebhookParser verifies and decodes Paddle subscription notifications.
type WebhookParser struct {
	verifier signatureVerifier
}

// NewWebhookParser creates a parser for cfg.Secret.
func NewWebhookParser(cfg WebhookConfig) (*WebhookParser, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingWebhookSecret
	}
	return &WebhookParser{verifier: paddle.NewWebhookVerifier(cfg.Secret)}, nil
}

type paddleNotification struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
	Data       struct {
		ID         string         `json:"id"`
		Status     string         `json:"status"`
		CustomData map[string]any `json:"custom_data"`
	} `json:"data"`
}

// Parse checks signature against payload and returns the event. Events
// other than subscription.* come back with Type EventOther.
func (p *WebhookParser) Parse(ctx context.Context, payload []byte, signature string) (*Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(ErrInvalidWebhookPayload, err, nil)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidWebhookSignature, err, nil)
	}
	if !valid {
		return nil, ErrInvalidWebhookSignature
	}

	var n paddleNotification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, errs.Wrap(ErrInvalidWebhookPayload, err, nil)
	}

	event := &Event{
		ID:            n.EventID,
		Type:          mapEventType(n.EventType),
		ProviderEvent: n.EventType,
		Status:        n.Data.Status,
	}
	if t, err := time.Parse(time.RFC3339, n.OccurredAt); err == nil {
		event.OccurredAt = t
	}
	if event.Type != EventOther {
		event.SubscriptionID = n.Data.ID
		if userID, ok := n.Data.CustomData["customer_id"].(string); ok {
			event.UserID = userID
		}
	}
	return event, nil
}

func mapEventType(providerEvent string) EventType {
	switch providerEvent {
	case "subscription.created":
		return EventCreated
	case "subscription.updated", "subscription.activated", "subscription.trialing", "subscription.past_due":
		return EventUpdated
	case "subscription.canceled":
		return EventCanceled
	case "subscription.paused":
		return EventPaused
	case "subscription.resumed":
		return EventResumed
	}
	if strings.HasPrefix(providerEvent, "subscription.") {
		return EventUpdated
	}
	return EventOther
}
