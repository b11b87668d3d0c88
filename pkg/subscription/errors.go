package subscription

import "github.com/dmitrymomot/entitlements/pkg/errs"

var (
	ErrPlanNotFound            = errs.New(errs.KindNotFound, "subscription_plan_not_found", "subscription plan code not found in catalog")
	ErrMissingUserID           = errs.New(errs.KindPreconditionFailed, "subscription_user_missing", "subscription carries no user id")
	ErrMissingWebhookSecret    = errs.New(errs.KindConfigurationInvalid, "paddle_webhook_secret_missing", "paddle webhook secret is required")
	ErrInvalidWebhookSignature = errs.New(errs.KindPreconditionFailed, "webhook_signature_invalid", "webhook signature verification failed")
	ErrInvalidWebhookPayload   = errs.New(errs.KindPreconditionFailed, "webhook_payload_invalid", "webhook payload could not be parsed")
)
