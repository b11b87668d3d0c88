package queue

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/dmitrymomot/entitlements/pkg/mongo"
)

// MongoStorage keeps tasks in the queueTasks collection. Claiming is a single
// findOneAndUpdate so concurrent workers never receive the same task.
type MongoStorage struct {
	tasks *mongo.Collection
	now   func() time.Time
}

// NewMongoStorage creates a storage over db. Panics if db is nil.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	if db == nil {
		panic("queue: database cannot be nil")
	}
	return &MongoStorage{tasks: db.Collection(mongox.QueueTasksCollection), now: time.Now}
}

// EnsureIndexes creates the index used by ClaimTask.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "queue", Value: 1},
			{Key: "status", Value: 1},
			{Key: "priority", Value: -1},
			{Key: "scheduledAt", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("queue: create claim index: %w", err)
	}
	return nil
}

// CreateTask implements EnqueuerRepository.
func (s *MongoStorage) CreateTask(ctx context.Context, task *Task) error {
	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("queue: insert task: %w", err)
	}
	return nil
}

// ClaimTask implements WorkerRepository. A task is due when it is pending
// and scheduled in the past, or when its processing lock expired.
func (s *MongoStorage) ClaimTask(ctx context.Context, workerID string, queues []string, lockDuration time.Duration) (*Task, error) {
	now := s.now()
	filter := bson.M{
		"queue": bson.M{"$in": queues},
		"$or": bson.A{
			bson.M{"status": TaskStatusPending, "scheduledAt": bson.M{"$lte": now}},
			bson.M{"status": TaskStatusProcessing, "lockedUntil": bson.M{"$lt": now}},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":      TaskStatusProcessing,
		"lockedUntil": now.Add(lockDuration),
		"lockedBy":    workerID,
	}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "scheduledAt", Value: 1}}).
		SetReturnDocument(options.After)

	var task Task
	err := s.tasks.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	if mongox.IsNoDocuments(err) {
		return nil, ErrNoTaskToClaim
	}
	if err != nil {
		return nil, fmt.Errorf("queue: claim task: %w", err)
	}
	return &task, nil
}

// CompleteTask implements WorkerRepository.
func (s *MongoStorage) CompleteTask(ctx context.Context, taskID string) error {
	res, err := s.tasks.UpdateOne(ctx,
		bson.M{"_id": taskID, "status": TaskStatusProcessing},
		bson.M{
			"$set":   bson.M{"status": TaskStatusCompleted, "processedAt": s.now()},
			"$unset": bson.M{"lockedUntil": "", "lockedBy": ""},
		})
	if err != nil {
		return fmt.Errorf("queue: complete task: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotClaimed, taskID)
	}
	return nil
}

// FailTask implements WorkerRepository with an update pipeline so the retry
// decision is made on the stored counters.
func (s *MongoStorage) FailTask(ctx context.Context, taskID string, errorMsg string, retry bool) error {
	now := s.now()
	exhausted := bson.M{"$or": bson.A{!retry, bson.M{"$gt": bson.A{"$retryCount", "$maxRetries"}}}}
	backoff := bson.M{"$multiply": bson.A{"$retryCount", retryBackoff(1).Milliseconds()}}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"retryCount": bson.M{"$add": bson.A{"$retryCount", 1}},
			"error":      errorMsg,
		}}},
		{{Key: "$unset", Value: bson.A{"lockedUntil", "lockedBy"}}},
		{{Key: "$set", Value: bson.M{
			"status":      bson.M{"$cond": bson.A{exhausted, TaskStatusFailed, TaskStatusPending}},
			"scheduledAt": bson.M{"$cond": bson.A{exhausted, "$scheduledAt", bson.M{"$add": bson.A{now, backoff}}}},
			"processedAt": bson.M{"$cond": bson.A{exhausted, now, "$$REMOVE"}},
		}}},
	}

	res, err := s.tasks.UpdateOne(ctx, bson.M{"_id": taskID, "status": TaskStatusProcessing}, pipeline)
	if err != nil {
		return fmt.Errorf("queue: fail task: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotClaimed, taskID)
	}
	return nil
}

// Task loads a task by id.
func (s *MongoStorage) Task(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if mongox.IsNoDocuments(err) {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("queue: find task: %w", err)
	}
	return &task, nil
}
