// Package config loads typed configuration from the environment.
//
// Load parses a struct annotated with `env` tags (github.com/caarlos0/env/v11)
// after loading an optional .env file once (github.com/joho/godotenv). Each
// configuration type is parsed once per process and cached by value, so the
// settings cmd/entitlements hands to constructors stay fixed for the
// lifetime of the process.
//
//	var cfg features.Config
//	config.MustLoad(&cfg)
//	updater := features.NewUpdater(store, cfg)
//
// ResetCache clears the cache between tests.
package config
