package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// NewPostmarkClient creates a Postmark-backed email sender. Both tokens and
// both addresses are required.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	if err := cfg.validatePostmark(); err != nil {
		return nil, err
	}
	return &postmarkClient{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

func (cfg Config) validatePostmark() error {
	required := []struct {
		name  string
		value string
		email bool
	}{
		{"PostmarkServerToken", cfg.PostmarkServerToken, false},
		{"PostmarkAccountToken", cfg.PostmarkAccountToken, false},
		{"SenderEmail", cfg.SenderEmail, true},
		{"SupportEmail", cfg.SupportEmail, true},
	}
	for _, field := range required {
		switch {
		case field.value == "":
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, field.name)
		case field.email && !emailRegex.MatchString(field.value):
			return fmt.Errorf("%w: %s must be a valid email address", ErrInvalidConfig, field.name)
		}
	}
	return nil
}

// MustNewPostmarkClient is NewPostmarkClient that panics on invalid config.
func MustNewPostmarkClient(cfg Config) EmailSender {
	client, err := NewPostmarkClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements EmailSender. Replies go to the support address.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := postmark.Email{
		From:     c.config.SenderEmail,
		ReplyTo:  c.config.SupportEmail,
		To:       params.SendTo,
		Subject:  params.Subject,
		Tag:      params.Tag,
		HTMLBody: params.BodyHTML,
	}
	resp, err := c.client.SendEmail(ctx, msg)
	switch {
	case err != nil:
		return errors.Join(ErrFailedToSendEmail, err)
	case resp.ErrorCode > 0:
		return errors.Join(ErrFailedToSendEmail,
			fmt.Errorf("postmark rejected %q for %s: %d %s", params.Tag, params.SendTo, resp.ErrorCode, resp.Message))
	}
	return nil
}
