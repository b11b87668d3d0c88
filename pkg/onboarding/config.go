package onboarding

import (
	"time"

	"github.com/dmitrymomot/entitlements/pkg/environment"
	"github.com/dmitrymomot/entitlements/pkg/feature"
)

// Config controls onboarding email dispatch.
type Config struct {
	Enabled        bool          `env:"ENABLE_ONBOARDING_EMAILS" envDefault:"false"`
	Delay          time.Duration `env:"ONBOARDING_EMAIL_DELAY" envDefault:"24h"`
	RolloutPercent int           `env:"ONBOARDING_EMAIL_ROLLOUT_PERCENT" envDefault:"100"`
	Environments   []string      `env:"ONBOARDING_EMAIL_ENVIRONMENTS" envSeparator:","`
	SiteURL        string        `env:"SITE_URL" envDefault:"https://www.overleaf.com"`
	Currency       string        `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	Locale         string        `env:"DEFAULT_LOCALE" envDefault:"en-US"`
}

// Flag builds the onboarding_emails flag. A rollout below 100 percent and a
// list of environments narrow it further.
func (c Config) Flag() *feature.Flag {
	var strategies []feature.Strategy
	if c.RolloutPercent < 100 {
		strategies = append(strategies, feature.NewPercentageStrategy(c.RolloutPercent))
	}
	if len(c.Environments) > 0 {
		envs := make([]environment.Environment, 0, len(c.Environments))
		for _, name := range c.Environments {
			envs = append(envs, environment.Parse(name))
		}
		strategies = append(strategies, feature.NewEnvironmentStrategy(envs...))
	}

	flag := &feature.Flag{
		Name:        feature.FlagOnboardingEmails,
		Description: "send the onboarding email after a subscription starts",
		Enabled:     c.Enabled,
	}
	if len(strategies) > 0 {
		flag.Strategy = feature.NewAllStrategy(strategies...)
	}
	return flag
}
