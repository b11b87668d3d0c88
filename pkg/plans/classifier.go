package plans

import "strings"

// SubscriptionInfo is the part of a group subscription needed for classification.
type SubscriptionInfo struct {
	PlanCode  string
	GroupPlan bool
}

// Classifier answers tier questions about plan codes. It never returns errors:
// unknown plans simply classify as false.
type Classifier struct {
	catalog *Catalog
	matcher *FeatureSetMatcher
}

// NewClassifier creates a classifier over catalog and matcher. Panics on nil arguments.
func NewClassifier(catalog *Catalog, matcher *FeatureSetMatcher) *Classifier {
	if catalog == nil {
		panic("plans: catalog cannot be nil")
	}
	if matcher == nil {
		panic("plans: feature set matcher cannot be nil")
	}
	return &Classifier{catalog: catalog, matcher: matcher}
}

// IsProfessionalPlan requires both the naming convention and the feature shape.
func (c *Classifier) IsProfessionalPlan(planCode string) bool {
	if !strings.Contains(planCode, string(TierProfessional)) {
		return false
	}
	return c.Tier(planCode) == TierProfessional
}

// IsProfessionalGroupPlan reports whether the subscription is a group plan on a professional tier.
func (c *Classifier) IsProfessionalGroupPlan(sub SubscriptionInfo) bool {
	return sub.GroupPlan && c.IsProfessionalPlan(sub.PlanCode)
}

// Tier returns the feature-shape label of a plan, or "" when the plan is
// unknown or its features match no canonical set.
func (c *Classifier) Tier(planCode string) TierLabel {
	p, ok := c.catalog.Find(planCode)
	if !ok {
		return ""
	}
	label, _ := c.matcher.Classify(p.Features)
	return label
}
