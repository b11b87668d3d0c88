package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entitlements/pkg/email"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Welcome to Overleaf Premium",
		BodyHTML: "<p>Thanks for subscribing</p>",
		Tag:      "onboarding",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *email.SendEmailParams)
		errMsg string
	}{
		{name: "valid", mutate: func(*email.SendEmailParams) {}},
		{name: "valid without tag", mutate: func(p *email.SendEmailParams) { p.Tag = "" }},
		{name: "plus address", mutate: func(p *email.SendEmailParams) { p.SendTo = "test.user+tag@sub.example.com" }},
		{name: "empty recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }, errMsg: "SendTo is required"},
		{name: "blank recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "   " }, errMsg: "SendTo is required"},
		{name: "no at sign", mutate: func(p *email.SendEmailParams) { p.SendTo = "invalid-email" }, errMsg: "SendTo must be a valid email address"},
		{name: "no domain", mutate: func(p *email.SendEmailParams) { p.SendTo = "user@" }, errMsg: "SendTo must be a valid email address"},
		{name: "no local part", mutate: func(p *email.SendEmailParams) { p.SendTo = "@example.com" }, errMsg: "SendTo must be a valid email address"},
		{name: "blank subject", mutate: func(p *email.SendEmailParams) { p.Subject = " " }, errMsg: "Subject is required"},
		{name: "blank body", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }, errMsg: "BodyHTML is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := validParams()
			tt.mutate(&params)

			err := params.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, email.NewDevSender(dir).SendEmail(ctx, validParams()))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)

		for _, f := range files {
			assert.Contains(t, f.Name(), "_onboarding.")
			content, err := os.ReadFile(filepath.Join(dir, f.Name()))
			require.NoError(t, err)

			switch {
			case strings.HasSuffix(f.Name(), ".html"):
				assert.Equal(t, "<p>Thanks for subscribing</p>", string(content))
			case strings.HasSuffix(f.Name(), ".json"):
				var meta map[string]any
				require.NoError(t, json.Unmarshal(content, &meta))
				assert.Equal(t, "user@example.com", meta["send_to"])
				assert.Equal(t, "onboarding", meta["tag"])
				assert.NotEmpty(t, meta["timestamp"])
			default:
				t.Fatalf("unexpected file %s", f.Name())
			}
		}
	})

	t.Run("falls back to sanitised subject", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := validParams()
		params.Tag = ""
		params.Subject = "Your Overleaf Trial!"
		require.NoError(t, email.NewDevSender(dir).SendEmail(ctx, params))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.NotEmpty(t, files)
		assert.Contains(t, files[0].Name(), "your_overleaf_trial")
	})

	t.Run("invalid params write nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := validParams()
		params.SendTo = ""

		err := email.NewDevSender(dir).SendEmail(ctx, params)
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		t.Parallel()

		err := email.NewDevSender("/dev/null/emails").SendEmail(ctx, validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})
}

func TestConfig_PostmarkEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, email.Config{}.PostmarkEnabled())
	assert.False(t, email.Config{PostmarkServerToken: "s"}.PostmarkEnabled())
	assert.True(t, email.Config{PostmarkServerToken: "s", PostmarkAccountToken: "a"}.PostmarkEnabled())
}
