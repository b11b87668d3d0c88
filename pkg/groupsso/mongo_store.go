package groupsso

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
)

// MongoStore reads groups and SSO configs and links identities on user documents.
type MongoStore struct {
	subscriptions *mongo.Collection
	ssoConfigs    *mongo.Collection
	users         *mongo.Collection
}

// NewMongoStore creates a store over db. Panics if db is nil.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("groupsso: database cannot be nil")
	}
	return &MongoStore{
		subscriptions: db.Collection(mongox.SubscriptionsCollection),
		ssoConfigs:    db.Collection(mongox.SSOConfigsCollection),
		users:         db.Collection(mongox.UsersCollection),
	}
}

type subscriptionDoc struct {
	ID        any    `bson:"_id"`
	PlanCode  string `bson:"planCode"`
	GroupPlan bool   `bson:"groupPlan"`
	MemberIDs []any  `bson:"member_ids"`
	SSOConfig any    `bson:"ssoConfig"`
}

type ssoConfigDoc struct {
	ID      any  `bson:"_id"`
	Enabled bool `bson:"enabled"`
}

type markerDoc struct {
	GroupID  any       `bson:"groupId"`
	LinkedAt time.Time `bson:"linkedAt"`
	Primary  bool      `bson:"primary"`
}

type userDoc struct {
	ID              any        `bson:"_id"`
	Email           string     `bson:"email"`
	SAMLIdentifiers []Identity `bson:"samlIdentifiers"`
	Enrollment      struct {
		SSO []markerDoc `bson:"sso"`
	} `bson:"enrollment"`
}

func (d userDoc) toUser() *User {
	u := &User{
		ID:              mongox.IDString(d.ID),
		Email:           d.Email,
		SAMLIdentifiers: d.SAMLIdentifiers,
	}
	for _, m := range d.Enrollment.SSO {
		u.SSOEnrollments = append(u.SSOEnrollments, EnrollmentMarker{
			GroupID:  mongox.IDString(m.GroupID),
			LinkedAt: m.LinkedAt,
			Primary:  m.Primary,
		})
	}
	return u
}

var userProjection = bson.M{"email": 1, "samlIdentifiers": 1, "enrollment.sso": 1}

func (s *MongoStore) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	var doc subscriptionDoc
	err := s.subscriptions.FindOne(ctx, mongox.IDFilter(subscriptionID)).Decode(&doc)
	if mongox.IsNoDocuments(err) {
		return nil, errs.Wrap(ErrSubscriptionNotFound, err, map[string]any{"subscriptionId": subscriptionID})
	}
	if err != nil {
		return nil, errs.Collaborator("subscriptions.findOne", err)
	}

	sub := &Subscription{
		ID:          mongox.IDString(doc.ID),
		PlanCode:    doc.PlanCode,
		GroupPlan:   doc.GroupPlan,
		SSOConfigID: mongox.IDString(doc.SSOConfig),
		MemberIDs:   make([]string, 0, len(doc.MemberIDs)),
	}
	for _, id := range doc.MemberIDs {
		sub.MemberIDs = append(sub.MemberIDs, mongox.IDString(id))
	}
	return sub, nil
}

func (s *MongoStore) GetSSOConfig(ctx context.Context, ssoConfigID string) (*SSOConfig, error) {
	if ssoConfigID == "" {
		return nil, nil
	}

	var doc ssoConfigDoc
	err := s.ssoConfigs.FindOne(ctx, mongox.IDFilter(ssoConfigID)).Decode(&doc)
	if mongox.IsNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Collaborator("ssoconfigs.findOne", err)
	}
	return &SSOConfig{ID: mongox.IDString(doc.ID), Enabled: doc.Enabled}, nil
}

func (s *MongoStore) GetUser(ctx context.Context, userID string) (*User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, mongox.IDFilter(userID), options.FindOne().SetProjection(userProjection)).Decode(&doc)
	if mongox.IsNoDocuments(err) {
		return nil, errs.Wrap(ErrUserNotFound, err, map[string]any{"userId": userID})
	}
	if err != nil {
		return nil, errs.Collaborator("users.findOne", err)
	}
	return doc.toUser(), nil
}

func (s *MongoStore) FindUserByIdentity(ctx context.Context, providerID, externalUserID, userIDAttribute string) (*User, error) {
	filter := bson.M{
		"samlIdentifiers": bson.M{"$elemMatch": bson.M{
			"providerId":      providerID,
			"externalUserId":  externalUserID,
			"userIdAttribute": userIDAttribute,
		}},
	}

	var doc userDoc
	err := s.users.FindOne(ctx, filter, options.FindOne().SetProjection(userProjection)).Decode(&doc)
	if mongox.IsNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Collaborator("users.findOne", err)
	}
	return doc.toUser(), nil
}

// LinkIdentity pushes the identity and the enrollment marker in one updateOne.
func (s *MongoStore) LinkIdentity(ctx context.Context, userID string, identity Identity, marker EnrollmentMarker) error {
	update := bson.M{
		"$push": bson.M{
			"samlIdentifiers": identity,
			"enrollment.sso": markerDoc{
				GroupID:  mongox.IDValue(marker.GroupID),
				LinkedAt: marker.LinkedAt,
				Primary:  marker.Primary,
			},
		},
	}
	if _, err := s.users.UpdateOne(ctx, mongox.IDFilter(userID), update); err != nil {
		return errs.Collaborator("users.updateOne", err)
	}
	return nil
}
