package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ObjectID parses a hex id. Ids that are not valid hex object ids are
// rejected with ErrInvalidObjectID.
func ObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, errors.Join(ErrInvalidObjectID, err)
	}
	return oid, nil
}

// IDValue converts a string id to the value stored in documents: valid hex
// strings become object ids, anything else stays a string.
func IDValue(id string) any {
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// IDFilter matches a document by _id using IDValue.
func IDFilter(id string) bson.M {
	return bson.M{"_id": IDValue(id)}
}

// IDString renders a decoded _id value as a string.
func IDString(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	}
	return ""
}
