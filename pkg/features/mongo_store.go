package features

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
	"github.com/dmitrymomot/entitlements/pkg/plans"
)

// MongoStore keeps feature bundles on documents of the users collection.
type MongoStore struct {
	users *mongo.Collection
}

// NewMongoStore creates a store over db's users collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("features: database cannot be nil")
	}
	return &MongoStore{users: db.Collection(mongox.UsersCollection)}
}

type featuresProjection struct {
	Features bson.M `bson:"features"`
}

// UpdateFeaturesReturningPrevious runs a single findOneAndUpdate returning
// the document before the update.
func (s *MongoStore) UpdateFeaturesReturningPrevious(ctx context.Context, userID string, set map[string]any) (plans.Features, bool, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{FieldFeatures: 1})

	var doc featuresProjection
	err := s.users.FindOneAndUpdate(ctx, mongox.IDFilter(userID), bson.M{"$set": set}, opts).Decode(&doc)
	if mongox.IsNoDocuments(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Collaborator("users.findOneAndUpdate", err)
	}
	return fromBSON(doc.Features), true, nil
}

// AppendFeaturesOverride pushes onto featuresOverrides with updateOne.
func (s *MongoStore) AppendFeaturesOverride(ctx context.Context, userID string, override Override) error {
	_, err := s.users.UpdateOne(ctx, mongox.IDFilter(userID), bson.M{
		"$push": bson.M{FieldFeaturesOverrides: override},
	})
	if err != nil {
		return errs.Collaborator("users.updateOne", err)
	}
	return nil
}

// fromBSON converts the decoded bundle to plain Go values. Nested documents
// decode as bson.D and arrays as bson.A; both are turned into the map and
// slice shapes YAML produces so bundles from either source compare equal.
func fromBSON(m bson.M) plans.Features {
	if m == nil {
		return nil
	}
	f := make(plans.Features, len(m))
	for key, value := range m {
		f[key] = normalizeBSON(value)
	}
	return f
}

func normalizeBSON(v any) any {
	switch x := v.(type) {
	case bson.M:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeBSON(val)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeBSON(val)
		}
		return out
	}
	return v
}
