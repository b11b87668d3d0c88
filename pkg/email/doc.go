// Package email sends transactional emails.
//
// EmailSender has two implementations: the Postmark client
// (github.com/mrz1836/postmark) for production and DevSender, which writes
// each message to disk as an HTML file plus JSON metadata. Both validate
// SendEmailParams before sending.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome",
//		BodyHTML: html,
//		Tag:      "onboarding",
//	})
//
// Bodies are built from templ components in the templates subpackage and
// turned into strings with templates.Render.
//
// Errors are sentinels checkable with errors.Is: ErrInvalidConfig,
// ErrInvalidParams and ErrFailedToSendEmail.
package email
