package onboarding

import "github.com/dmitrymomot/entitlements/pkg/errs"

var (
	ErrPlanNotFound = errs.New(errs.KindNotFound, "onboarding_plan_not_found", "plan code not found in catalog")
	ErrUserNotFound = errs.New(errs.KindNotFound, "onboarding_user_not_found", "user not found")
)
