package features

import (
	"context"
	"time"

	"github.com/dmitrymomot/entitlements/pkg/plans"
)

// Document fields written by the updater.
const (
	FieldFeatures          = "features"
	FieldFeaturesUpdatedAt = "featuresUpdatedAt"
	FieldFeaturesEpoch     = "featuresEpoch"
	FieldFeaturesOverrides = "featuresOverrides"
)

// Store is the persistence collaborator for user feature bundles.
type Store interface {
	// UpdateFeaturesReturningPrevious applies set as a $set update to the user
	// document and returns the feature bundle as it was before the update.
	// found is false when no user matched.
	UpdateFeaturesReturningPrevious(ctx context.Context, userID string, set map[string]any) (previous plans.Features, found bool, err error)
	// AppendFeaturesOverride pushes override onto the user's override history.
	AppendFeaturesOverride(ctx context.Context, userID string, override Override) error
}

// Override is a manual feature grant recorded on the user. Its shape is
// supplied by the caller and stored as is.
type Override struct {
	Note      string         `bson:"note,omitempty"`
	Features  plans.Features `bson:"features"`
	Expires   *time.Time     `bson:"expiresAt,omitempty"`
	CreatedAt time.Time      `bson:"createdAt"`
	CreatedBy string         `bson:"createdBy,omitempty"`
}

// Result is returned by UpdateFeatures.
type Result struct {
	Features        plans.Features
	FeaturesChanged bool
}

// Config holds process-wide reconciliation settings.
type Config struct {
	// FeaturesEpoch is stamped onto every update when set.
	FeaturesEpoch string `env:"FEATURES_EPOCH"`
}
