// Package mongo provides the MongoDB connection used by the entitlements
// stores, plus a few helpers for ids and "no documents" handling.
//
// Configuration is read from the environment (MONGODB_URL, MONGODB_DATABASE
// and friends). Only the initial connection is retried; driver-level
// retryable reads and writes are disabled because the feature reconciler
// must observe a single atomic findOneAndUpdate per call.
//
// # Usage
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	users := db.Collection(mongo.UsersCollection)
//
// # Testing
//
// Store integration tests connect with MongoTestDatabase and skip when
// MONGODB_URL is not set.
package mongo
