package plans_test

import "github.com/dmitrymomot/entitlements/pkg/plans"

func price(cents int64) *int64 { return &cents }

func featureSets() map[plans.TierLabel]plans.Features {
	return map[plans.TierLabel]plans.Features{
		plans.TierPersonal: {
			"collaborators": 1, "compileTimeout": 60, "compileGroup": "standard",
			"dropbox": false, "github": false, "trackChanges": false,
		},
		plans.TierCollaborator: {
			"collaborators": 10, "compileTimeout": 240, "compileGroup": "priority",
			"dropbox": true, "github": true, "trackChanges": true,
		},
		plans.TierProfessional: {
			"collaborators": -1, "compileTimeout": 240, "compileGroup": "priority",
			"dropbox": true, "github": true, "trackChanges": true,
		},
	}
}

func testPlans() []plans.Plan {
	sets := featureSets()
	return []plans.Plan{
		{Code: "personal", Name: "Personal", PriceInCents: price(0), Features: sets[plans.TierPersonal]},
		{Code: "collaborator", Name: "Standard", PriceInCents: price(1500), Features: sets[plans.TierCollaborator]},
		{Code: "professional", Name: "Professional", PriceInCents: price(3000), Features: sets[plans.TierProfessional]},
		{Code: "professional-annual", Name: "Professional (annual)", PriceInCents: price(30000), AnnualPlan: true, Features: sets[plans.TierProfessional]},
		{Code: "group_professional_10_educational", Name: "Group Professional", PriceInCents: price(60000), GroupPlan: true, MembersLimit: 10, Features: sets[plans.TierProfessional]},
		{Code: "group_collaborator_10_enterprise", Name: "Group Standard", PriceInCents: price(90000), GroupPlan: true, MembersLimit: 10, Features: sets[plans.TierCollaborator]},
		{Code: "professional-legacy", Name: "Professional (legacy)", PriceInCents: price(2000), Features: plans.Features{
			"collaborators": -1, "compileTimeout": 180, "compileGroup": "priority",
			"dropbox": true, "github": true, "trackChanges": true,
		}},
		{Code: "assistant", Name: "AI Assist", PriceInCents: price(2100), Features: plans.Features{}},
		{Code: "assistant-annual", Name: "AI Assist (annual)", PriceInCents: price(21000), AnnualPlan: true, Features: plans.Features{}},
	}
}
