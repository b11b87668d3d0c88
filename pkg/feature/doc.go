// Package feature holds process-level switches. Flags are seeded from
// configuration into a MemoryProvider and can be narrowed with strategies
// that read the user id (WithUserID) or the deployment environment
// (environment.WithContext) from the context.
//
//	flags, _ := feature.NewMemoryProvider(&feature.Flag{
//		Name:     feature.FlagOnboardingEmails,
//		Enabled:  true,
//		Strategy: feature.NewPercentageStrategy(25),
//	})
//	on, err := flags.IsEnabled(feature.WithUserID(ctx, userID), feature.FlagOnboardingEmails)
package feature
