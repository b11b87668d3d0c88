package queue_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entitlements/pkg/environment"
	"github.com/dmitrymomot/entitlements/pkg/queue"
)

type mockWorkerRepository struct {
	mock.Mock
}

func (m *mockWorkerRepository) ClaimTask(ctx context.Context, workerID string, queues []string, lockDuration time.Duration) (*queue.Task, error) {
	args := m.Called(ctx, workerID, queues, lockDuration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Task), args.Error(1)
}

func (m *mockWorkerRepository) CompleteTask(ctx context.Context, taskID string) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *mockWorkerRepository) FailTask(ctx context.Context, taskID string, errorMsg string, retry bool) error {
	return m.Called(ctx, taskID, errorMsg, retry).Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(t *testing.T, repo queue.WorkerRepository) *queue.Worker {
	t.Helper()

	w, err := queue.NewWorker(repo,
		queue.WithPullInterval(5*time.Millisecond),
		queue.WithMaxConcurrentTasks(2),
		queue.WithWorkerLogger(quietLogger()),
	)
	require.NoError(t, err)
	return w
}

func TestNewWorker(t *testing.T) {
	t.Parallel()

	_, err := queue.NewWorker(nil)
	assert.ErrorIs(t, err, queue.ErrRepositoryNil)
}

func TestWorker_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("start without handlers", func(t *testing.T) {
		t.Parallel()

		w := newTestWorker(t, queue.NewMemoryStorage(nil))
		assert.ErrorIs(t, w.Start(context.Background()), queue.ErrNoHandlers)
	})

	t.Run("stop before start", func(t *testing.T) {
		t.Parallel()

		w := newTestWorker(t, queue.NewMemoryStorage(nil))
		assert.ErrorIs(t, w.Stop(), queue.ErrWorkerNotStarted)
	})

	t.Run("double start", func(t *testing.T) {
		t.Parallel()

		w := newTestWorker(t, queue.NewMemoryStorage(nil))
		w.RegisterHandlers(queue.NewTaskHandler(func(context.Context, welcomePayload) error { return nil }))

		require.NoError(t, w.Start(context.Background()))
		assert.ErrorIs(t, w.Start(context.Background()), queue.ErrWorkerStarted)
		require.NoError(t, w.Stop())
	})
}

func TestWorker_Processing(t *testing.T) {
	t.Parallel()

	t.Run("runs enqueued tasks to completion", func(t *testing.T) {
		t.Parallel()

		storage := queue.NewMemoryStorage(nil)
		enq, err := queue.NewEnqueuer(storage)
		require.NoError(t, err)
		task, err := enq.Enqueue(context.Background(), welcomePayload{UserID: "u1"})
		require.NoError(t, err)

		received := make(chan welcomePayload, 1)
		w := newTestWorker(t, storage)
		w.RegisterHandlers(queue.NewTaskHandler(func(_ context.Context, p welcomePayload) error {
			received <- p
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		select {
		case p := <-received:
			assert.Equal(t, "u1", p.UserID)
		case <-time.After(2 * time.Second):
			t.Fatal("task was not processed")
		}

		assert.Eventually(t, func() bool {
			stored, _ := storage.Task(task.ID)
			return stored.Status == queue.TaskStatusCompleted
		}, 2*time.Second, 5*time.Millisecond)

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("handler errors are retried later", func(t *testing.T) {
		t.Parallel()

		storage := queue.NewMemoryStorage(nil)
		enq, err := queue.NewEnqueuer(storage)
		require.NoError(t, err)
		task, err := enq.Enqueue(context.Background(), welcomePayload{UserID: "u1"})
		require.NoError(t, err)

		w := newTestWorker(t, storage)
		w.RegisterHandlers(queue.NewTaskHandler(func(context.Context, welcomePayload) error {
			return errors.New("postmark down")
		}))
		require.NoError(t, w.Start(context.Background()))
		defer func() { _ = w.Stop() }()

		assert.Eventually(t, func() bool {
			stored, _ := storage.Task(task.ID)
			return stored.RetryCount == 1 && stored.Status == queue.TaskStatusPending
		}, 2*time.Second, 5*time.Millisecond)

		stored, _ := storage.Task(task.ID)
		assert.Equal(t, "postmark down", stored.Error)
	})

	t.Run("panics are recorded as failures", func(t *testing.T) {
		t.Parallel()

		storage := queue.NewMemoryStorage(nil)
		enq, err := queue.NewEnqueuer(storage)
		require.NoError(t, err)
		task, err := enq.Enqueue(context.Background(), welcomePayload{UserID: "u1"})
		require.NoError(t, err)

		w := newTestWorker(t, storage)
		w.RegisterHandlers(queue.NewTaskHandler(func(context.Context, welcomePayload) error {
			panic("boom")
		}))
		require.NoError(t, w.Start(context.Background()))
		defer func() { _ = w.Stop() }()

		assert.Eventually(t, func() bool {
			stored, _ := storage.Task(task.ID)
			return stored.RetryCount == 1
		}, 2*time.Second, 5*time.Millisecond)

		stored, _ := storage.Task(task.ID)
		assert.Contains(t, stored.Error, "panic in handler")
	})

	t.Run("missing handler fails without retry", func(t *testing.T) {
		t.Parallel()

		storage := queue.NewMemoryStorage(nil)
		enq, err := queue.NewEnqueuer(storage)
		require.NoError(t, err)
		task, err := enq.Enqueue(context.Background(), welcomePayload{}, queue.WithTaskName("unknown"))
		require.NoError(t, err)

		w := newTestWorker(t, storage)
		w.RegisterHandlers(queue.NewTaskHandler(func(context.Context, welcomePayload) error { return nil }))
		require.NoError(t, w.Start(context.Background()))
		defer func() { _ = w.Stop() }()

		assert.Eventually(t, func() bool {
			stored, _ := storage.Task(task.ID)
			return stored.Status == queue.TaskStatusFailed
		}, 2*time.Second, 5*time.Millisecond)
	})

	t.Run("handlers receive the decorated context", func(t *testing.T) {
		t.Parallel()

		storage := queue.NewMemoryStorage(nil)
		enq, err := queue.NewEnqueuer(storage)
		require.NoError(t, err)
		_, err = enq.Enqueue(context.Background(), welcomePayload{UserID: "u1"})
		require.NoError(t, err)

		seen := make(chan environment.Environment, 1)
		w, err := queue.NewWorker(storage,
			queue.WithPullInterval(5*time.Millisecond),
			queue.WithWorkerLogger(quietLogger()),
			queue.WithTaskContext(func(ctx context.Context) context.Context {
				return environment.WithContext(ctx, environment.Staging)
			}),
		)
		require.NoError(t, err)
		w.RegisterHandlers(queue.NewTaskHandler(func(ctx context.Context, _ welcomePayload) error {
			seen <- environment.FromContext(ctx)
			return nil
		}))
		require.NoError(t, w.Start(context.Background()))
		defer func() { _ = w.Stop() }()

		select {
		case env := <-seen:
			assert.Equal(t, environment.Staging, env)
		case <-time.After(2 * time.Second):
			t.Fatal("task was not processed")
		}
	})

	t.Run("claim errors do not stop polling", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		repo := new(mockWorkerRepository)
		repo.On("ClaimTask", mock.Anything, mock.Anything, []string{queue.DefaultQueueName}, mock.Anything).
			Run(func(mock.Arguments) { calls.Add(1) }).
			Return(nil, errors.New("connection reset"))

		w := newTestWorker(t, repo)
		w.RegisterHandlers(queue.NewTaskHandler(func(context.Context, welcomePayload) error { return nil }))
		require.NoError(t, w.Start(context.Background()))

		assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
		require.NoError(t, w.Stop())
		repo.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything)
	})
}
