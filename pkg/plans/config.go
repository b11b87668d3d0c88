package plans

// Config locates the plan catalog definitions.
type Config struct {
	PlansFile string `env:"PLANS_FILE" envDefault:"config/plans.yaml"`
}
