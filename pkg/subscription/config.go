package subscription

// Config holds subscription refresh settings.
type Config struct {
	// DefaultPlanCode supplies the features of canceled and paused subscriptions.
	DefaultPlanCode string `env:"DEFAULT_PLAN_CODE" envDefault:"personal"`
}
