package audit

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
)

// MongoStorage appends events to the userAuditLogEntries collection.
type MongoStorage struct {
	entries *mongo.Collection
}

// NewMongoStorage creates a storage over db. Panics if db is nil.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	if db == nil {
		panic("audit: database cannot be nil")
	}
	return &MongoStorage{entries: db.Collection(mongox.AuditLogCollection)}
}

type eventDoc struct {
	ID          string         `bson:"_id"`
	UserID      any            `bson:"userId"`
	Operation   string         `bson:"operation"`
	InitiatorID any            `bson:"initiatorId,omitempty"`
	IPAddress   string         `bson:"ipAddress,omitempty"`
	Info        map[string]any `bson:"info,omitempty"`
	Timestamp   bson.DateTime  `bson:"timestamp"`
}

// Store inserts event. User ids that are object ids are stored as such so
// the entries join with the users collection.
func (s *MongoStorage) Store(ctx context.Context, event Event) error {
	doc := eventDoc{
		ID:        event.ID,
		UserID:    mongox.IDValue(event.UserID),
		Operation: event.Operation,
		IPAddress: event.IPAddress,
		Info:      event.Info,
		Timestamp: bson.NewDateTimeFromTime(event.Timestamp),
	}
	if event.InitiatorID != "" {
		doc.InitiatorID = mongox.IDValue(event.InitiatorID)
	}

	if _, err := s.entries.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return nil
}
