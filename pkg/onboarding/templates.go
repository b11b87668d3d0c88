package onboarding

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/entitlements/pkg/email/templates"
)

const (
	onboardingSubject = "Getting more out of Overleaf"
	tagOnboarding     = "onboarding"
	tagTrial          = "trial-onboarding"
)

func greeting(firstName string) string {
	if name := strings.TrimSpace(firstName); name != "" {
		return "Hi " + name + ","
	}
	return "Hi,"
}

func onboardingEmail(user User, siteURL string) templ.Component {
	return templates.Layout(onboardingSubject,
		templates.Paragraph(greeting(user.FirstName)),
		templates.Paragraph("Thanks for subscribing. Here are a few things you can do with your new features:"),
		templates.List(
			"Invite more collaborators to your projects",
			"Compile larger documents with the extended compile timeout",
			"Track changes and review your collaborators' edits",
		),
		templates.Paragraphs(
			templates.Text("Find guides and tutorials in our "),
			templates.Link(strings.TrimRight(siteURL, "/")+"/learn", "documentation"),
			templates.Text("."),
		),
	)
}

type trialDetails struct {
	PlanName string
	TrialEnd string
	Price    string
}

func trialSubject(planName string) string {
	return "Welcome to your Overleaf " + planName + " trial"
}

func trialOnboardingEmail(user User, trial trialDetails, siteURL string) templ.Component {
	return templates.Layout(trialSubject(trial.PlanName),
		templates.Paragraph(greeting(user.FirstName)),
		templates.Paragraph("Your "+trial.PlanName+" trial is active. It ends on "+trial.TrialEnd+
			", after which you will be billed "+trial.Price+" unless you cancel."),
		templates.Paragraphs(
			templates.Text("You can manage your subscription from your "),
			templates.Link(strings.TrimRight(siteURL, "/")+"/user/subscription", "account settings"),
			templates.Text("."),
		),
	)
}
