package onboarding_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
	"github.com/dmitrymomot/entitlements/pkg/onboarding"
)

func TestMongoStore(t *testing.T) {
	t.Parallel()

	db := mongox.MongoTestDatabase(t)
	ctx := context.Background()

	id := bson.NewObjectID()
	_, err := db.Collection(mongox.UsersCollection).InsertOne(ctx, bson.M{
		"_id":        id,
		"email":      "ada@example.com",
		"first_name": "Ada",
	})
	require.NoError(t, err)

	store := onboarding.NewMongoStore(db)

	user, err := store.GetUser(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Nil(t, user.OnboardingEmailSentAt)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.MarkOnboardingEmailSent(ctx, id.Hex(), at))

	user, err = store.GetUser(ctx, id.Hex())
	require.NoError(t, err)
	require.NotNil(t, user.OnboardingEmailSentAt)
	assert.True(t, at.Equal(*user.OnboardingEmailSentAt))

	_, err = store.GetUser(ctx, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, onboarding.ErrUserNotFound)
}
