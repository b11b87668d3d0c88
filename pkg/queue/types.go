package queue

import "time"

// DefaultQueueName is the queue used when no queue is specified.
const DefaultQueueName = "default"

// TaskStatus is the lifecycle state of a stored task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Priority orders due tasks inside a queue (0-100, higher first).
type Priority int8

const (
	PriorityMin     Priority = 0
	PriorityLow     Priority = 25
	PriorityMedium  Priority = 50
	PriorityHigh    Priority = 75
	PriorityMax     Priority = 100
	PriorityDefault Priority = PriorityMedium
)

// Valid reports whether p is within [PriorityMin, PriorityMax].
func (p Priority) Valid() bool {
	return p >= PriorityMin && p <= PriorityMax
}

// Task is a unit of delayed work. Payload holds the JSON-encoded handler
// argument.
type Task struct {
	ID          string     `json:"id" bson:"_id"`
	Queue       string     `json:"queue" bson:"queue"`
	TaskName    string     `json:"task_name" bson:"taskName"`
	Payload     []byte     `json:"payload,omitempty" bson:"payload,omitempty"`
	Status      TaskStatus `json:"status" bson:"status"`
	Priority    Priority   `json:"priority" bson:"priority"`
	RetryCount  int8       `json:"retry_count" bson:"retryCount"`
	MaxRetries  int8       `json:"max_retries" bson:"maxRetries"`
	ScheduledAt time.Time  `json:"scheduled_at" bson:"scheduledAt"`
	LockedUntil *time.Time `json:"locked_until,omitempty" bson:"lockedUntil,omitempty"`
	LockedBy    string     `json:"locked_by,omitempty" bson:"lockedBy,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" bson:"processedAt,omitempty"`
	Error       string     `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"createdAt"`
}

// retryBackoff is the delay before the n-th retry of a failed task.
func retryBackoff(retryCount int8) time.Duration {
	return time.Duration(retryCount) * 30 * time.Second
}
