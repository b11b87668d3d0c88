// Package onboarding sends the emails that follow a subscription start.
//
// ScheduleOnboardingEmail enqueues an OnboardingEmailTask with the configured
// delay when the onboarding_emails flag is on for the user. The queue worker
// runs SendOnboardingEmail through Handler, which renders the templ body,
// sends it and stamps onboardingEmailSentAt so a retried task does not email
// twice. SendTrialOnboardingEmail sends the trial welcome email immediately,
// with the trial end date and the post-trial price formatted for display.
package onboarding
