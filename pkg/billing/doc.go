// Package billing reads subscriptions, accounts and coupons from the payment
// provider. Nothing here mutates provider state.
//
// PaddleProvider maps Paddle records (github.com/PaddleHQ/paddle-go-sdk/v4)
// onto Subscription, Account and Coupon. Subscription methods answer the
// add-on questions used around plan changes: HasAddOn, HasAddOnNextPeriod,
// IsStandaloneAiAddOn and PlanChangeAddOns. Provider errors are returned
// tagged as collaborator failures.
package billing
