package billing

import "github.com/dmitrymomot/entitlements/pkg/errs"

var (
	ErrMissingAPIKey      = errs.New(errs.KindConfigurationInvalid, "paddle_api_key_missing", "paddle API key is required")
	ErrInvalidEnvironment = errs.New(errs.KindConfigurationInvalid, "paddle_environment_invalid", "invalid paddle environment")
	ErrEmptySubscription  = errs.New(errs.KindCollaboratorFailure, "billing_subscription_empty", "billing subscription has no items")
)
