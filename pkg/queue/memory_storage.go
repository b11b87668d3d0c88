package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// MemoryStorage implements the queue repositories in memory for tests and
// local runs. Tasks whose lock expired are claimable again.
type MemoryStorage struct {
	mu    sync.Mutex
	tasks map[string]*Task
	order []string
	now   func() time.Time
}

// NewMemoryStorage creates an empty storage. A nil clock means time.Now.
func NewMemoryStorage(now func() time.Time) *MemoryStorage {
	if now == nil {
		now = time.Now
	}
	return &MemoryStorage{tasks: make(map[string]*Task), now: now}
}

// CreateTask implements EnqueuerRepository.
func (ms *MemoryStorage) CreateTask(_ context.Context, task *Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.tasks[task.ID]; exists {
		return fmt.Errorf("task with ID %s already exists", task.ID)
	}
	taskCopy := *task
	ms.tasks[task.ID] = &taskCopy
	ms.order = append(ms.order, task.ID)
	return nil
}

// ClaimTask implements WorkerRepository. Higher priority wins; earlier
// ScheduledAt breaks ties.
func (ms *MemoryStorage) ClaimTask(_ context.Context, workerID string, queues []string, lockDuration time.Duration) (*Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	var best *Task
	for _, id := range ms.order {
		task := ms.tasks[id]
		if !slices.Contains(queues, task.Queue) || !claimable(task, now) {
			continue
		}
		if best == nil ||
			task.Priority > best.Priority ||
			(task.Priority == best.Priority && task.ScheduledAt.Before(best.ScheduledAt)) {
			best = task
		}
	}
	if best == nil {
		return nil, ErrNoTaskToClaim
	}

	lockUntil := now.Add(lockDuration)
	best.Status = TaskStatusProcessing
	best.LockedUntil = &lockUntil
	best.LockedBy = workerID

	taskCopy := *best
	return &taskCopy, nil
}

func claimable(task *Task, now time.Time) bool {
	switch task.Status {
	case TaskStatusPending:
		return !task.ScheduledAt.After(now)
	case TaskStatusProcessing:
		return task.LockedUntil != nil && task.LockedUntil.Before(now)
	}
	return false
}

// CompleteTask implements WorkerRepository.
func (ms *MemoryStorage) CompleteTask(_ context.Context, taskID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, err := ms.claimed(taskID)
	if err != nil {
		return err
	}
	now := ms.now()
	task.Status = TaskStatusCompleted
	task.ProcessedAt = &now
	task.LockedUntil = nil
	task.LockedBy = ""
	return nil
}

// FailTask implements WorkerRepository.
func (ms *MemoryStorage) FailTask(_ context.Context, taskID string, errorMsg string, retry bool) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, err := ms.claimed(taskID)
	if err != nil {
		return err
	}
	task.RetryCount++
	task.Error = errorMsg
	task.LockedUntil = nil
	task.LockedBy = ""

	if !retry || task.RetryCount > task.MaxRetries {
		now := ms.now()
		task.Status = TaskStatusFailed
		task.ProcessedAt = &now
		return nil
	}
	task.Status = TaskStatusPending
	task.ScheduledAt = ms.now().Add(retryBackoff(task.RetryCount))
	return nil
}

// Task returns a copy of the stored task.
func (ms *MemoryStorage) Task(taskID string) (Task, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, ok := ms.tasks[taskID]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Tasks returns copies of all tasks in creation order.
func (ms *MemoryStorage) Tasks() []Task {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]Task, 0, len(ms.order))
	for _, id := range ms.order {
		out = append(out, *ms.tasks[id])
	}
	return out
}

func (ms *MemoryStorage) claimed(taskID string) (*Task, error) {
	task, ok := ms.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if task.Status != TaskStatusProcessing {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotClaimed, taskID)
	}
	return task, nil
}
