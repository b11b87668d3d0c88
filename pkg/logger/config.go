package logger

// Config holds logger settings read from the environment.
type Config struct {
	Service string `env:"SERVICE_NAME" envDefault:"entitlements"`
	Level   string `env:"LOG_LEVEL"`
}
