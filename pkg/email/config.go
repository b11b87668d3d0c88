package email

// Config holds email service configuration.
// Without Postmark tokens the process falls back to a DevSender writing to
// DevOutputDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"welcome@overleaf.com"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@overleaf.com"`
	DevOutputDir         string `env:"EMAIL_DEV_OUTPUT_DIR" envDefault:"tmp/emails"`
}

// PostmarkEnabled reports whether both Postmark tokens are set.
func (c Config) PostmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
