// Package plans holds the subscription plan catalog and the pure
// classification logic built on top of it.
//
// A Catalog is built once at startup from a Source (YAML file or in-memory)
// and validated: a plan without a numeric price is a configuration error
// and the process is expected to stop. Lookups by code are exact.
//
// A FeatureSetMatcher labels a feature bundle ("personal", "collaborator",
// "professional") only when it is structurally equal to one of the canonical
// sets. Legacy bundles that differ in any key therefore stay unlabeled.
//
// Classifier combines both to answer tier questions such as
// IsProfessionalPlan. The AI assistant helpers (IsStandaloneAiAddOnPlanCode,
// SubscriptionChangeIsAiAssistUpgrade) are plain functions of their input.
//
// Example:
//
//	catalog, matcher, err := plans.LoadCatalog(ctx, plans.NewFileSource(cfg.PlansFile))
//	if err != nil {
//		return err
//	}
//	classifier := plans.NewClassifier(catalog, matcher)
//	if classifier.IsProfessionalPlan("professional-annual") {
//		// ...
//	}
package plans
