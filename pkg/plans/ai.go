package plans

const (
	// AIAddOnCode identifies the AI assistant add-on on any subscription.
	AIAddOnCode = "assistant"
	// AIStandalonePlanCode is the monthly plan selling the assistant on its own.
	AIStandalonePlanCode = "assistant"
	// AIStandaloneAnnualPlanCode is the annual variant.
	AIStandaloneAnnualPlanCode = "assistant-annual"
)

// AddOn is an add-on line of a subscription or a pending change.
type AddOn struct {
	Code     string
	Quantity int
}

// ChangeIntent describes what a subscription will look like after a pending change.
// A nil NextAddOns means the change carries no add-on list; an empty slice
// means it explicitly removes all add-ons. Both mean "no add-ons" here.
type ChangeIntent struct {
	NextPlanCode string
	NextAddOns   []AddOn
}

// IsStandaloneAiAddOnPlanCode matches the standalone assistant plan codes exactly.
func IsStandaloneAiAddOnPlanCode(planCode string) bool {
	return planCode == AIStandalonePlanCode || planCode == AIStandaloneAnnualPlanCode
}

// SubscriptionChangeIsAiAssistUpgrade reports whether the change grants AI assist.
func SubscriptionChangeIsAiAssistUpgrade(intent ChangeIntent) bool {
	return HasAiAssist(intent.NextPlanCode, intent.NextAddOns)
}

// SubscriptionChangeIsAiAssistDowngrade reports whether the change revokes AI
// assist from a subscription that currently has it.
func SubscriptionChangeIsAiAssistDowngrade(currentPlanCode string, currentAddOns []AddOn, intent ChangeIntent) bool {
	return HasAiAssist(currentPlanCode, currentAddOns) && !SubscriptionChangeIsAiAssistUpgrade(intent)
}

// HasAiAssist reports whether a plan with the given add-ons includes AI assist.
func HasAiAssist(planCode string, addOns []AddOn) bool {
	if IsStandaloneAiAddOnPlanCode(planCode) {
		return true
	}
	for _, a := range addOns {
		if a.Code == AIAddOnCode {
			return true
		}
	}
	return false
}
