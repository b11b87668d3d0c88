package onboarding

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
)

// MongoStore reads recipients from the users collection.
type MongoStore struct {
	users *mongo.Collection
}

// NewMongoStore creates a store over db's users collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("onboarding: database cannot be nil")
	}
	return &MongoStore{users: db.Collection(mongox.UsersCollection)}
}

type userDoc struct {
	ID                    any        `bson:"_id"`
	Email                 string     `bson:"email"`
	FirstName             string     `bson:"first_name"`
	OnboardingEmailSentAt *time.Time `bson:"onboardingEmailSentAt"`
}

// GetUser implements UserStore.
func (s *MongoStore) GetUser(ctx context.Context, userID string) (User, error) {
	opts := options.FindOne().SetProjection(bson.M{
		"email":                    1,
		"first_name":               1,
		FieldOnboardingEmailSentAt: 1,
	})

	var doc userDoc
	err := s.users.FindOne(ctx, mongox.IDFilter(userID), opts).Decode(&doc)
	if mongox.IsNoDocuments(err) {
		return User{}, errs.WithInfo(ErrUserNotFound, map[string]any{"user_id": userID})
	}
	if err != nil {
		return User{}, errs.Collaborator("users.findOne", err)
	}
	return User{
		ID:                    mongox.IDString(doc.ID),
		Email:                 doc.Email,
		FirstName:             doc.FirstName,
		OnboardingEmailSentAt: doc.OnboardingEmailSentAt,
	}, nil
}

// MarkOnboardingEmailSent implements UserStore.
func (s *MongoStore) MarkOnboardingEmailSent(ctx context.Context, userID string, at time.Time) error {
	_, err := s.users.UpdateOne(ctx, mongox.IDFilter(userID), bson.M{
		"$set": bson.M{FieldOnboardingEmailSentAt: at},
	})
	if err != nil {
		return errs.Collaborator("users.updateOne", err)
	}
	return nil
}
