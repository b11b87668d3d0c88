// Package subscription applies payment-provider subscription changes to user
// entitlements.
//
// WebhookParser verifies Paddle notifications and normalises them into
// Events. TaskForEvent turns an event into a ChangedTask for the queue, and
// Service.HandleChange, registered through Handler, refreshes the user's
// features from the provider state:
//
//  1. the subscription is read through billing.Provider
//  2. its plan code (or the default plan once canceled or paused) is looked
//     up in the catalog; an unknown code is a NotFound error
//  3. the plan features are written with the feature updater
//  4. the plan is classified (tier, professional, AI assist and the
//     direction of any pending AI change) and the outcome is logged
//
// New subscriptions also trigger the onboarding emails when an Onboarder is
// configured.
package subscription
