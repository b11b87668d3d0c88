// Package features reconciles a user's stored feature bundle with the
// bundle computed from their subscriptions.
//
// Every operation is one logical write. UpdateFeatures sets keys one by one
// and OverrideFeatures replaces the whole bundle; both learn whether anything
// changed from the document state returned atomically by the same update, so
// concurrent updates for one user never race on a separate read.
// CreateFeaturesOverride appends to the user's override history.
//
// Store errors are returned tagged as collaborator failures and are never
// retried. A missing user is not an error: the update matches nothing and
// the result reports no change.
//
//	updater := features.NewUpdater(features.NewMongoStore(db), cfg, features.WithLogger(log))
//	res, err := updater.UpdateFeatures(ctx, userID, plans.Features{"dropbox": true})
//	if err != nil {
//		return err
//	}
//	if res.FeaturesChanged {
//		// notify downstream systems
//	}
package features
