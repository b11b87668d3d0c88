package plans

import "github.com/dmitrymomot/entitlements/pkg/errs"

var (
	ErrInvalidPlanConfiguration = errs.New(errs.KindConfigurationInvalid, "invalid_plan_configuration", "invalid plan configuration")
	ErrDuplicatePlanCode        = errs.New(errs.KindConfigurationInvalid, "duplicate_plan_code", "duplicate plan code in catalog")
	ErrEmptyCatalog             = errs.New(errs.KindConfigurationInvalid, "empty_plan_catalog", "plan catalog has no plans")
	ErrFailedToLoadPlans        = errs.New(errs.KindConfigurationInvalid, "failed_to_load_plans", "failed to load plan definitions")
)
