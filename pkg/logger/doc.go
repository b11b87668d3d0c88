// Package logger builds the *slog.Logger shared by the entitlements services.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout) and wraps the chosen handler in LogHandlerDecorator, which
// runs registered ContextExtractor callbacks on every record so values
// stored in context.Context (environment, task id) reach the output without
// being passed explicitly.
//
// Attribute helpers in attr.go keep key names consistent: Error, ErrorKind,
// UserID, PlanCode, SubscriptionID, GroupID, TaskID, Component, Operation.
// Helpers return an empty slog.Attr for nil or empty input, so they are safe
// to pass unconditionally:
//
//	log.InfoContext(ctx, "user features changed",
//		logger.UserID(userID),
//		logger.PlanCode(planCode),
//		logger.Error(err),
//	)
//
// # Configuration
//
//   - WithDevelopment, WithStaging, WithProduction: per-environment defaults.
//   - WithEnvironment: pick one of the above from an APP_ENV name.
//   - WithFormat, WithTextFormatter, WithJSONFormatter: output format.
//   - WithLevel, WithLevelName: minimum level.
//   - WithAttr: static attributes.
//   - WithContextExtractors, WithContextValue: attributes pulled from context.
//
// Config carries SERVICE_NAME and LOG_LEVEL for cmd/entitlements.
package logger
