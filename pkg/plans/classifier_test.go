package plans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/entitlements/pkg/plans"
)

func newClassifier() *plans.Classifier {
	return plans.NewClassifier(plans.MustNewCatalog(testPlans()...), plans.NewFeatureSetMatcher(featureSets()))
}

func TestClassifier_IsProfessionalPlan(t *testing.T) {
	t.Parallel()

	c := newClassifier()

	tests := []struct {
		code string
		want bool
	}{
		{"professional", true},
		{"professional-annual", true},
		{"group_professional_10_educational", true},
		{"professional-legacy", false},
		{"collaborator", false},
		{"group_collaborator_10_enterprise", false},
		{"professional-unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.IsProfessionalPlan(tt.code))
		})
	}
}

func TestClassifier_IsProfessionalGroupPlan(t *testing.T) {
	t.Parallel()

	c := newClassifier()

	assert.True(t, c.IsProfessionalGroupPlan(plans.SubscriptionInfo{PlanCode: "group_professional_10_educational", GroupPlan: true}))
	assert.False(t, c.IsProfessionalGroupPlan(plans.SubscriptionInfo{PlanCode: "group_professional_10_educational", GroupPlan: false}))
	assert.False(t, c.IsProfessionalGroupPlan(plans.SubscriptionInfo{PlanCode: "group_collaborator_10_enterprise", GroupPlan: true}))
	assert.False(t, c.IsProfessionalGroupPlan(plans.SubscriptionInfo{PlanCode: "missing", GroupPlan: true}))
}

func TestClassifier_Tier(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	assert.Equal(t, plans.TierCollaborator, c.Tier("collaborator"))
	assert.Equal(t, plans.TierLabel(""), c.Tier("professional-legacy"))
	assert.Equal(t, plans.TierLabel(""), c.Tier("missing"))
}

func TestNewClassifier_PanicsOnNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { plans.NewClassifier(nil, plans.NewFeatureSetMatcher(nil)) })
	assert.Panics(t, func() { plans.NewClassifier(plans.MustNewCatalog(testPlans()...), nil) })
}

func TestClassifier_NeverPanics(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.String().Draw(t, "code")
		group := rapid.Bool().Draw(t, "group")

		professional := c.IsProfessionalPlan(code)
		_ = c.IsProfessionalGroupPlan(plans.SubscriptionInfo{PlanCode: code, GroupPlan: group})
		if professional && c.Tier(code) != plans.TierProfessional {
			t.Fatalf("plan %q is professional but tier is %q", code, c.Tier(code))
		}
	})
}
