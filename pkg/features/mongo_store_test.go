package features_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/entitlements/pkg/features"
	"github.com/dmitrymomot/entitlements/pkg/mongo"
	"github.com/dmitrymomot/entitlements/pkg/plans"
)

func TestMongoStore_Reconciliation(t *testing.T) {
	db := mongo.MongoTestDatabase(t)
	ctx := context.Background()

	userOID := bson.NewObjectID()
	_, err := db.Collection(mongo.UsersCollection).InsertOne(ctx, bson.M{
		"_id":      userOID,
		"features": bson.M{"a": false, "compileTimeout": 60},
	})
	require.NoError(t, err)

	u := features.NewUpdater(features.NewMongoStore(db), features.Config{FeaturesEpoch: "v3"}, features.WithClock(clock))
	userID := userOID.Hex()

	res, err := u.UpdateFeatures(ctx, userID, plans.Features{"a": true})
	require.NoError(t, err)
	assert.True(t, res.FeaturesChanged)

	res, err = u.UpdateFeatures(ctx, userID, plans.Features{"a": true, "compileTimeout": 60})
	require.NoError(t, err)
	assert.False(t, res.FeaturesChanged)

	res, err = u.UpdateFeatures(ctx, bson.NewObjectID().Hex(), plans.Features{"a": true})
	require.NoError(t, err)
	assert.False(t, res.FeaturesChanged)

	changed, err := u.OverrideFeatures(ctx, userID, plans.Features{"a": true, "b": false})
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = u.OverrideFeatures(ctx, userID, plans.Features{"a": true, "b": false})
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, u.CreateFeaturesOverride(ctx, userID, features.Override{Note: "grant", Features: plans.Features{"b": true}, CreatedAt: fixedNow}))

	var doc struct {
		FeaturesEpoch     string         `bson:"featuresEpoch"`
		FeaturesOverrides []bson.M       `bson:"featuresOverrides"`
		Features          map[string]any `bson:"features"`
	}
	require.NoError(t, db.Collection(mongo.UsersCollection).FindOne(ctx, bson.M{"_id": userOID}).Decode(&doc))
	assert.Equal(t, "v3", doc.FeaturesEpoch)
	assert.Len(t, doc.FeaturesOverrides, 1)
	assert.Equal(t, map[string]any{"a": true, "b": false}, doc.Features)
}
