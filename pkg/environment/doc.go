// Package environment names the deployment environment (development,
// staging, production) and carries it through context.Context.
//
// cmd/entitlements parses APP_ENV once, passes it to the logger factory
// and stores it on the root context so queue handlers can branch on it,
// for example to send onboarding emails through the development sender.
package environment
